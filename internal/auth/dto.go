package auth

import "github.com/nbelhadj/maintenance-management/internal/personnel"

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	Role  string    `json:"role"`
	User  LoginUser `json:"user"`
}

// MeResponse is the profile payload. Details carries the linked technician
// or admin record depending on the role.
type MeResponse struct {
	ID       int64                     `json:"id"`
	Username string                    `json:"username"`
	Role     string                    `json:"role"`
	FullName string                    `json:"full_name"`
	Details  *personnel.PersonResponse `json:"details,omitempty"`
}

type ChangePasswordDTO struct {
	Password string `json:"password"`
}
