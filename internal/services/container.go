package services

// ServiceContainer - контейнер всех сервисов приложения
type ServiceContainer struct {
	JobQueryService     JobQueryService
	JobService          JobService
	ApplicationService  ApplicationService
	SavedJobService     SavedJobService
	NotificationService NotificationService
	UserService         UserService
	ReferenceService    ReferenceService
}
