package domain

// UserRole gates which API operations a user may invoke.
// Role checks happen at the API boundary; core services assume an authorized caller.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleKasir    UserRole = "kasir"
	RoleOperator UserRole = "operator"
	RoleManajer  UserRole = "manajer"
	RoleDesainer UserRole = "desainer"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleKasir, RoleOperator, RoleManajer, RoleDesainer:
		return true
	}
	return false
}

// User is an application operator account.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"` // bcrypt hash, never serialized
	Role         UserRole `json:"role"`
	FullName     string   `json:"fullName"`
	AuditFields
}
