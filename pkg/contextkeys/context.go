package contextkeys

// Кастомный тип ключа, чтобы избежать коллизий в context
type contextKey string

// DBContextKey - ключ, под которым *gorm.DB (пул или транзакция) лежит в context
const DBContextKey = contextKey("db")
