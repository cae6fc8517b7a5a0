package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для ошибок бизнес-логики портала вакансий.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Предопределенные переменные для частых, статичных ошибок
var (
	ErrJobNotFound         = New(CodeNotFound, "jobs", "Job not found", http.StatusNotFound)
	ErrUserNotFound        = New(CodeNotFound, "users", "User not found", http.StatusNotFound)
	ErrApplicationNotFound = New(CodeNotFound, "applications", "Application not found", http.StatusNotFound)
	ErrReferenceNotFound   = New(CodeNotFound, "reference", "Reference entity not found", http.StatusNotFound)

	ErrApplicationExists = New(CodeAlreadyExists, "applications", "Application already exists for this job", http.StatusConflict)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "users", "Email already exists", http.StatusConflict)

	// Статус отклика двигается только вперед: 1→{2,3,4}, 2→{3,4}
	ErrStatusTransition = New(CodeInvalidStatus, "applications", "Application status cannot move backwards", http.StatusBadRequest)

	ErrInsufficientPermissions = New(CodeForbidden, "auth", "Insufficient permissions", http.StatusForbidden)
	ErrInvalidUserRole         = New(CodeInvalidOperation, "users", "Invalid user role for this operation", http.StatusBadRequest)
	ErrInvalidReferenceKind    = New(CodeInvalidOperation, "reference", "Unknown reference collection", http.StatusBadRequest)
)
