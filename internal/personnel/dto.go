package personnel

import (
	"strings"
	"time"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/account"
	"github.com/nbelhadj/maintenance-management/internal/core/types"
)

// PersonDTO is the create/update payload shared by technicians and admins.
type PersonDTO struct {
	LastName  string      `json:"nom"`
	FirstName string      `json:"prenom"`
	Email     string      `json:"email"`
	BirthDate types.Date  `json:"date_naissance"`
	HireDate  *types.Date `json:"date_embauche"`
}

func (dto PersonDTO) Validate() error {
	if strings.TrimSpace(dto.LastName) == "" {
		return internal.NewValidationError("le champ 'nom' est requis", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.FirstName) == "" {
		return internal.NewValidationError("le champ 'prenom' est requis", internal.ErrCodeValidationFailed)
	}
	if !strings.Contains(dto.Email, "@") {
		return internal.NewValidationError("adresse email invalide", internal.ErrCodeValidationFailed)
	}
	if dto.BirthDate.IsZero() {
		return internal.NewValidationError("le champ 'date_naissance' est requis", internal.ErrCodeInvalidDate)
	}
	return nil
}

// PersonResponse is the serialized person. Account carries the one-time
// provisioning credentials and is only populated on creation.
type PersonResponse struct {
	ID        int64                           `json:"id"`
	LastName  string                          `json:"nom"`
	FirstName string                          `json:"prenom"`
	Email     string                          `json:"email"`
	BirthDate types.Date                      `json:"date_naissance"`
	HireDate  *types.Date                     `json:"date_embauche"`
	CreatedAt time.Time                       `json:"created_at"`
	Account   *account.ProvisionedCredentials `json:"account,omitempty"`
}

func technicianResponse(t *Technician, creds *account.ProvisionedCredentials) *PersonResponse {
	return &PersonResponse{
		ID:        t.ID,
		LastName:  t.LastName,
		FirstName: t.FirstName,
		Email:     t.Email,
		BirthDate: t.BirthDate,
		HireDate:  t.HireDate,
		CreatedAt: t.CreatedAt,
		Account:   creds,
	}
}

func adminResponse(a *Admin, creds *account.ProvisionedCredentials) *PersonResponse {
	return &PersonResponse{
		ID:        a.ID,
		LastName:  a.LastName,
		FirstName: a.FirstName,
		Email:     a.Email,
		BirthDate: a.BirthDate,
		HireDate:  a.HireDate,
		CreatedAt: a.CreatedAt,
		Account:   creds,
	}
}
