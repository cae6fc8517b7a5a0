package models

type UserRole string

const (
	UserRoleJobSeeker  UserRole = "job_seeker"
	UserRoleRecruiter  UserRole = "recruiter"
	UserRoleEmployee   UserRole = "employee"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "super_admin"
)

// IsValidUserRole проверяет, что роль известна системе
func IsValidUserRole(role UserRole) bool {
	switch role {
	case UserRoleJobSeeker, UserRoleRecruiter, UserRoleEmployee,
		UserRoleAdmin, UserRoleSuperAdmin:
		return true
	}
	return false
}

// Статусы отклика на вакансию. Числовые коды исторические,
// пришли вместе с данными и используются в уведомлениях.
const (
	ApplicationStatusApplied       = 1
	ApplicationStatusProfileViewed = 2
	ApplicationStatusNotSuitable   = 3
	ApplicationStatusSelected      = 4
)

// allowedStatusTransitions: статус двигается только вперед
// {1→2, 1→3, 1→4, 2→3, 2→4}; из терминальных статусов переходов нет.
var allowedStatusTransitions = map[int][]int{
	ApplicationStatusApplied:       {ApplicationStatusProfileViewed, ApplicationStatusNotSuitable, ApplicationStatusSelected},
	ApplicationStatusProfileViewed: {ApplicationStatusNotSuitable, ApplicationStatusSelected},
}

// IsValidStatusTransition проверяет допустимость перехода статуса отклика
func IsValidStatusTransition(from, to int) bool {
	for _, next := range allowedStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsKnownApplicationStatus проверяет, что код статуса известен
func IsKnownApplicationStatus(status int) bool {
	switch status {
	case ApplicationStatusApplied, ApplicationStatusProfileViewed,
		ApplicationStatusNotSuitable, ApplicationStatusSelected:
		return true
	}
	return false
}
