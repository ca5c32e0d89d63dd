package entity

// Roles válidos para User.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User representa un usuario que puede autenticarse en la API.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash
	Role         string // Admin, User
}

// UserFilter criterios de búsqueda para Find.
type UserFilter struct {
	Username string
}

// Match evalúa el filtro en memoria.
func (f UserFilter) Match(u *User) bool {
	return f.Username == "" || u.Username == f.Username
}
