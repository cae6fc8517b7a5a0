package services

import (
	"errors"

	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ReferenceService - админский CRUD над справочными коллекциями.
// Клиентское чтение справочников идет через движок запросов,
// здесь только управление.
type ReferenceService interface {
	List(db *gorm.DB, kind string) ([]repositories.ReferenceEntityView, error)
	Create(db *gorm.DB, kind string, req *dto.CreateReferenceRequest) (*repositories.ReferenceEntityView, error)
	Update(db *gorm.DB, kind, id string, req *dto.UpdateReferenceRequest) error
	Delete(db *gorm.DB, kind, id string) error
}

type referenceService struct {
	referenceRepo repositories.ReferenceRepository
}

func NewReferenceService(referenceRepo repositories.ReferenceRepository) ReferenceService {
	return &referenceService{referenceRepo: referenceRepo}
}

func (s *referenceService) List(db *gorm.DB, kind string) ([]repositories.ReferenceEntityView, error) {
	items, err := s.referenceRepo.List(db, kind)
	if err != nil {
		return nil, mapReferenceError(err)
	}
	return items, nil
}

func (s *referenceService) Create(db *gorm.DB, kind string, req *dto.CreateReferenceRequest) (*repositories.ReferenceEntityView, error) {
	view, err := s.referenceRepo.CreateEntity(db, kind, req.LegacyID, req.Name, req.Country)
	if err != nil {
		return nil, mapReferenceError(err)
	}
	return view, nil
}

func (s *referenceService) Update(db *gorm.DB, kind, id string, req *dto.UpdateReferenceRequest) error {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if len(fields) == 0 {
		return apperrors.ValidationError("No updatable fields in payload")
	}

	if err := s.referenceRepo.UpdateEntity(db, kind, id, fields); err != nil {
		return mapReferenceError(err)
	}
	return nil
}

func (s *referenceService) Delete(db *gorm.DB, kind, id string) error {
	if err := s.referenceRepo.DeleteEntity(db, kind, id); err != nil {
		return mapReferenceError(err)
	}
	return nil
}

func mapReferenceError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUnknownReferenceKind):
		return apperrors.ErrInvalidReferenceKind
	case errors.Is(err, repositories.ErrReferenceNotFound):
		return apperrors.ErrReferenceNotFound
	}
	return apperrors.StoreError(err)
}
