package repositories

import (
	"errors"
	"strconv"
	"sync"

	"jobportal_backend/internal/cache"
	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReferenceNotFound    = errors.New("reference entity not found")
	ErrUnknownReferenceKind = errors.New("unknown reference kind")
)

// ReferenceData - пять справочных коллекций, загруженных целиком
type ReferenceData struct {
	Locations        []models.Location
	Domains          []models.Domain
	JobTypes         []models.JobType
	WorkplaceTypes   []models.WorkplaceType
	ExperienceLevels []models.ExperienceLevel
}

// ReferenceLookup - карты "ссылка -> имя" по каждому справочнику.
// Ключом выступает и постоянный uuid, и строковая форма legacy id:
// записи вакансий могут ссылаться любым из двух способов.
type ReferenceLookup struct {
	Locations        map[string]string
	Domains          map[string]string
	JobTypes         map[string]string
	WorkplaceTypes   map[string]string
	ExperienceLevels map[string]string
}

// BuildLookup нормализует дуализм идентификаторов в единые карты
func (d *ReferenceData) BuildLookup() ReferenceLookup {
	lookup := ReferenceLookup{
		Locations:        make(map[string]string, len(d.Locations)*2),
		Domains:          make(map[string]string, len(d.Domains)*2),
		JobTypes:         make(map[string]string, len(d.JobTypes)*2),
		WorkplaceTypes:   make(map[string]string, len(d.WorkplaceTypes)*2),
		ExperienceLevels: make(map[string]string, len(d.ExperienceLevels)*2),
	}

	for _, e := range d.Locations {
		lookup.Locations[e.ID] = e.Name
		lookup.Locations[strconv.Itoa(e.LegacyID)] = e.Name
	}
	for _, e := range d.Domains {
		lookup.Domains[e.ID] = e.Name
		lookup.Domains[strconv.Itoa(e.LegacyID)] = e.Name
	}
	for _, e := range d.JobTypes {
		lookup.JobTypes[e.ID] = e.Name
		lookup.JobTypes[strconv.Itoa(e.LegacyID)] = e.Name
	}
	for _, e := range d.WorkplaceTypes {
		lookup.WorkplaceTypes[e.ID] = e.Name
		lookup.WorkplaceTypes[strconv.Itoa(e.LegacyID)] = e.Name
	}
	for _, e := range d.ExperienceLevels {
		lookup.ExperienceLevels[e.ID] = e.Name
		lookup.ExperienceLevels[strconv.Itoa(e.LegacyID)] = e.Name
	}

	return lookup
}

// ReferenceEntityView - плоское представление справочной записи для API
type ReferenceEntityView struct {
	ID       string `json:"id"`
	LegacyID int    `json:"legacyId"`
	Name     string `json:"name"`
	Country  string `json:"country,omitempty"`
}

type ReferenceRepository interface {
	GetAll(db *gorm.DB) (*ReferenceData, error)

	// Точечные резолвы для одиночной вакансии. Промах - не ошибка:
	// возвращается пустая строка.
	ResolveDomainByID(db *gorm.DB, id string) (string, error)
	ResolveLocation(db *gorm.DB, ref string) (string, error)
	ResolveJobType(db *gorm.DB, ref string) (string, error)
	ResolveWorkplaceType(db *gorm.DB, ref string) (string, error)
	ResolveExperienceLevel(db *gorm.DB, ref string) (string, error)

	// Админские операции над справочниками
	List(db *gorm.DB, kind string) ([]ReferenceEntityView, error)
	CreateEntity(db *gorm.DB, kind string, legacyID int, name, country string) (*ReferenceEntityView, error)
	UpdateEntity(db *gorm.DB, kind, id string, fields map[string]interface{}) error
	DeleteEntity(db *gorm.DB, kind, id string) error
}

type ReferenceRepositoryImpl struct {
	cache *cache.ReferenceCache
}

// NewReferenceRepository создает репозиторий справочников.
// refCache может быть nil - тогда все чтения идут напрямую в базу.
func NewReferenceRepository(refCache *cache.ReferenceCache) ReferenceRepository {
	return &ReferenceRepositoryImpl{cache: refCache}
}

// fetchCollection читает коллекцию через кэш, при промахе - из базы
func fetchCollection[T any](r *ReferenceRepositoryImpl, db *gorm.DB, kind string) ([]T, error) {
	var items []T
	if r.cache.Get(kind, &items) {
		return items, nil
	}

	if err := db.Find(&items).Error; err != nil {
		return nil, err
	}
	r.cache.Set(kind, items)
	return items, nil
}

// GetAll загружает пять коллекций параллельно; первая ошибка валит весь запрос
func (r *ReferenceRepositoryImpl) GetAll(db *gorm.DB) (*ReferenceData, error) {
	var (
		data ReferenceData
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		items, err := fetchCollection[models.Location](r, db, models.ReferenceKindLocation)
		if err != nil {
			fail(err)
			return
		}
		data.Locations = items
	}()
	go func() {
		defer wg.Done()
		items, err := fetchCollection[models.Domain](r, db, models.ReferenceKindDomain)
		if err != nil {
			fail(err)
			return
		}
		data.Domains = items
	}()
	go func() {
		defer wg.Done()
		items, err := fetchCollection[models.JobType](r, db, models.ReferenceKindJobType)
		if err != nil {
			fail(err)
			return
		}
		data.JobTypes = items
	}()
	go func() {
		defer wg.Done()
		items, err := fetchCollection[models.WorkplaceType](r, db, models.ReferenceKindWorkplaceType)
		if err != nil {
			fail(err)
			return
		}
		data.WorkplaceTypes = items
	}()
	go func() {
		defer wg.Done()
		items, err := fetchCollection[models.ExperienceLevel](r, db, models.ReferenceKindExperienceLevel)
		if err != nil {
			fail(err)
			return
		}
		data.ExperienceLevels = items
	}()
	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return &data, nil
}

// resolveByRef ищет запись по legacy id (если ссылка числовая) или по uuid
func resolveByRef[T any](db *gorm.DB, ref string, name func(*T) string) (string, error) {
	if ref == "" {
		return "", nil
	}

	var entity T
	var err error
	if legacyID, convErr := strconv.Atoi(ref); convErr == nil {
		err = db.First(&entity, "legacy_id = ?", legacyID).Error
	} else {
		err = db.First(&entity, "id = ?", ref).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return name(&entity), nil
}

func (r *ReferenceRepositoryImpl) ResolveDomainByID(db *gorm.DB, id string) (string, error) {
	if id == "" {
		return "", nil
	}

	var domain models.Domain
	err := db.First(&domain, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return domain.Name, nil
}

func (r *ReferenceRepositoryImpl) ResolveLocation(db *gorm.DB, ref string) (string, error) {
	return resolveByRef(db, ref, func(l *models.Location) string { return l.Name })
}

func (r *ReferenceRepositoryImpl) ResolveJobType(db *gorm.DB, ref string) (string, error) {
	return resolveByRef(db, ref, func(t *models.JobType) string { return t.Name })
}

func (r *ReferenceRepositoryImpl) ResolveWorkplaceType(db *gorm.DB, ref string) (string, error) {
	return resolveByRef(db, ref, func(t *models.WorkplaceType) string { return t.Name })
}

func (r *ReferenceRepositoryImpl) ResolveExperienceLevel(db *gorm.DB, ref string) (string, error) {
	return resolveByRef(db, ref, func(l *models.ExperienceLevel) string { return l.Name })
}

func (r *ReferenceRepositoryImpl) List(db *gorm.DB, kind string) ([]ReferenceEntityView, error) {
	switch kind {
	case models.ReferenceKindLocation:
		items, err := fetchCollection[models.Location](r, db, kind)
		if err != nil {
			return nil, err
		}
		views := make([]ReferenceEntityView, 0, len(items))
		for _, e := range items {
			views = append(views, ReferenceEntityView{ID: e.ID, LegacyID: e.LegacyID, Name: e.Name, Country: e.Country})
		}
		return views, nil
	case models.ReferenceKindDomain:
		items, err := fetchCollection[models.Domain](r, db, kind)
		if err != nil {
			return nil, err
		}
		views := make([]ReferenceEntityView, 0, len(items))
		for _, e := range items {
			views = append(views, ReferenceEntityView{ID: e.ID, LegacyID: e.LegacyID, Name: e.Name})
		}
		return views, nil
	case models.ReferenceKindJobType:
		items, err := fetchCollection[models.JobType](r, db, kind)
		if err != nil {
			return nil, err
		}
		views := make([]ReferenceEntityView, 0, len(items))
		for _, e := range items {
			views = append(views, ReferenceEntityView{ID: e.ID, LegacyID: e.LegacyID, Name: e.Name})
		}
		return views, nil
	case models.ReferenceKindWorkplaceType:
		items, err := fetchCollection[models.WorkplaceType](r, db, kind)
		if err != nil {
			return nil, err
		}
		views := make([]ReferenceEntityView, 0, len(items))
		for _, e := range items {
			views = append(views, ReferenceEntityView{ID: e.ID, LegacyID: e.LegacyID, Name: e.Name})
		}
		return views, nil
	case models.ReferenceKindExperienceLevel:
		items, err := fetchCollection[models.ExperienceLevel](r, db, kind)
		if err != nil {
			return nil, err
		}
		views := make([]ReferenceEntityView, 0, len(items))
		for _, e := range items {
			views = append(views, ReferenceEntityView{ID: e.ID, LegacyID: e.LegacyID, Name: e.Name})
		}
		return views, nil
	}
	return nil, ErrUnknownReferenceKind
}

func (r *ReferenceRepositoryImpl) CreateEntity(db *gorm.DB, kind string, legacyID int, name, country string) (*ReferenceEntityView, error) {
	var (
		view ReferenceEntityView
		err  error
	)

	switch kind {
	case models.ReferenceKindLocation:
		entity := models.Location{LegacyID: legacyID, Name: name, Country: country}
		if err = db.Create(&entity).Error; err == nil {
			view = ReferenceEntityView{ID: entity.ID, LegacyID: entity.LegacyID, Name: entity.Name, Country: entity.Country}
		}
	case models.ReferenceKindDomain:
		entity := models.Domain{LegacyID: legacyID, Name: name}
		if err = db.Create(&entity).Error; err == nil {
			view = ReferenceEntityView{ID: entity.ID, LegacyID: entity.LegacyID, Name: entity.Name}
		}
	case models.ReferenceKindJobType:
		entity := models.JobType{LegacyID: legacyID, Name: name}
		if err = db.Create(&entity).Error; err == nil {
			view = ReferenceEntityView{ID: entity.ID, LegacyID: entity.LegacyID, Name: entity.Name}
		}
	case models.ReferenceKindWorkplaceType:
		entity := models.WorkplaceType{LegacyID: legacyID, Name: name}
		if err = db.Create(&entity).Error; err == nil {
			view = ReferenceEntityView{ID: entity.ID, LegacyID: entity.LegacyID, Name: entity.Name}
		}
	case models.ReferenceKindExperienceLevel:
		entity := models.ExperienceLevel{LegacyID: legacyID, Name: name}
		if err = db.Create(&entity).Error; err == nil {
			view = ReferenceEntityView{ID: entity.ID, LegacyID: entity.LegacyID, Name: entity.Name}
		}
	default:
		return nil, ErrUnknownReferenceKind
	}

	if err != nil {
		return nil, err
	}
	r.cache.Invalidate(kind)
	return &view, nil
}

func (r *ReferenceRepositoryImpl) UpdateEntity(db *gorm.DB, kind, id string, fields map[string]interface{}) error {
	model, err := modelForKind(kind)
	if err != nil {
		return err
	}

	result := db.Model(model).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReferenceNotFound
	}
	r.cache.Invalidate(kind)
	return nil
}

func (r *ReferenceRepositoryImpl) DeleteEntity(db *gorm.DB, kind, id string) error {
	model, err := modelForKind(kind)
	if err != nil {
		return err
	}

	result := db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReferenceNotFound
	}
	r.cache.Invalidate(kind)
	return nil
}

func modelForKind(kind string) (interface{}, error) {
	switch kind {
	case models.ReferenceKindLocation:
		return &models.Location{}, nil
	case models.ReferenceKindDomain:
		return &models.Domain{}, nil
	case models.ReferenceKindJobType:
		return &models.JobType{}, nil
	case models.ReferenceKindWorkplaceType:
		return &models.WorkplaceType{}, nil
	case models.ReferenceKindExperienceLevel:
		return &models.ExperienceLevel{}, nil
	}
	return nil, ErrUnknownReferenceKind
}
