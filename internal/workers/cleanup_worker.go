package workers

import (
	"context"
	"log"
	"time"

	"jobportal_backend/internal/repositories"

	"gorm.io/gorm"
)

// CleanupWorker подчищает осиротевшие записи. Каскадное удаление
// вакансии транзакционно, но данные, пришедшие из старой системы,
// могут содержать отклики и закладки без вакансии.
type CleanupWorker struct {
	db              *gorm.DB
	applicationRepo repositories.ApplicationRepository
	savedJobRepo    repositories.SavedJobRepository
}

func NewCleanupWorker(
	db *gorm.DB,
	applicationRepo repositories.ApplicationRepository,
	savedJobRepo repositories.SavedJobRepository,
) *CleanupWorker {
	return &CleanupWorker{
		db:              db,
		applicationRepo: applicationRepo,
		savedJobRepo:    savedJobRepo,
	}
}

// Start запускает фоновую очистку
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.cleanOrphans(ctx)
}

func (w *CleanupWorker) cleanOrphans(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Cleanup worker stopped")
			return
		case <-ticker.C:
			if removed, err := w.applicationRepo.DeleteOrphaned(w.db); err != nil {
				log.Printf("Error cleaning orphaned applications: %v", err)
			} else if removed > 0 {
				log.Printf("Removed %d orphaned applications", removed)
			}

			if removed, err := w.savedJobRepo.DeleteOrphaned(w.db); err != nil {
				log.Printf("Error cleaning orphaned saved jobs: %v", err)
			} else if removed > 0 {
				log.Printf("Removed %d orphaned saved jobs", removed)
			}
		}
	}
}
