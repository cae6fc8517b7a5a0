package validator

import (
	"log"

	"jobportal_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации
// в переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - ошибка времени запуска,
			// приложение не должно стартовать
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-application-status", validateApplicationStatus)
}

// validateUserRole: роль должна быть известна системе
func validateUserRole(fl validator.FieldLevel) bool {
	role, ok := fl.Field().Interface().(models.UserRole)
	if !ok {
		role = models.UserRole(fl.Field().String())
	}
	return models.IsValidUserRole(role)
}

// validateApplicationStatus: код статуса отклика должен быть известен
func validateApplicationStatus(fl validator.FieldLevel) bool {
	return models.IsKnownApplicationStatus(int(fl.Field().Int()))
}
