package handlers

// AppHandlers - контейнер готовых хендлеров приложения
type AppHandlers struct {
	JobHandler          *JobHandler
	ApplicationHandler  *ApplicationHandler
	SavedJobHandler     *SavedJobHandler
	NotificationHandler *NotificationHandler
	UserHandler         *UserHandler
	ReferenceHandler    *ReferenceHandler
}
