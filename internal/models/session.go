package models

// Role is the panel access level of an authenticated admin
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Identity is the authenticated admin as known by the panel
type Identity struct {
	UserID string `json:"userId"`
	CPF    string `json:"cpf"`
	Role   Role   `json:"role"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by POST /auth/login. The backend spells
// the first-access flag "primaryAcess".
type LoginResponse struct {
	ID           int64  `json:"id"`
	PrimaryAcess bool   `json:"primaryAcess"`
	AccessToken  string `json:"accessToken"`
}

// ChangePasswordRequest is the body of PATCH /admins/change-password/:id
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}
