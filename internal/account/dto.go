package account

import (
	"time"

	"github.com/nbelhadj/maintenance-management/internal"
)

// CreateAccountDTO is the payload for creating an account by hand through the
// CRUD endpoint. Auto-provisioned accounts do not go through this path.
type CreateAccountDTO struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	TechnicienID *int64 `json:"technicien"`
	AdminID      *int64 `json:"admin"`
}

func (dto CreateAccountDTO) Validate() error {
	if dto.Username == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < MinPasswordLength {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodePasswordTooShort)
	}
	return nil
}

// UpdateAccountDTO updates the mutable account fields. The password is
// changed through the dedicated endpoints, never here.
type UpdateAccountDTO struct {
	Username     string `json:"username"`
	Role         string `json:"role"`
	TechnicienID *int64 `json:"technicien"`
	AdminID      *int64 `json:"admin"`
}

func (dto UpdateAccountDTO) Validate() error {
	if dto.Username == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ChangePasswordDTO struct {
	Password string `json:"password"`
}

// AccountResponse is the serialized account. No password material is ever
// included here; the one-time temp password travels only in the provisioning
// response.
type AccountResponse struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	FullName     string    `json:"full_name"`
	TechnicienID *int64    `json:"technicien"`
	AdminID      *int64    `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProvisionedCredentials is surfaced exactly once, in the response of the
// person-creation call that triggered provisioning.
type ProvisionedCredentials struct {
	AccountID    int64  `json:"account_id"`
	Username     string `json:"username"`
	TempPassword string `json:"temp_password"`
	EmailSent    bool   `json:"email_sent"`
}

type ResetPasswordResponse struct {
	Message   string `json:"message"`
	EmailSent bool   `json:"email_sent"`
}
