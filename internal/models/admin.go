package models

// Admin is a panel user as returned by the registry backend
type Admin struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// GetID returns the admin id
func (a Admin) GetID() int64 { return a.ID }

// AdminCreatePayload is the body of POST /admins
type AdminCreatePayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminUpdatePayload is the body of PATCH /admins/:id
type AdminUpdatePayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
