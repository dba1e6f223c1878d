package workshop

import (
	"strings"

	"github.com/nbelhadj/maintenance-management/internal"
)

type WorkshopDTO struct {
	Name string `json:"nom"`
}

func (dto WorkshopDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("le champ 'nom' est requis", internal.ErrCodeValidationFailed)
	}
	return nil
}

type EquipmentDTO struct {
	Name       string `json:"nom"`
	WorkshopID int64  `json:"atelier"`
}

func (dto EquipmentDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("le champ 'nom' est requis", internal.ErrCodeValidationFailed)
	}
	if dto.WorkshopID <= 0 {
		return internal.NewValidationError("le champ 'atelier' est requis", internal.ErrCodeValidationFailed)
	}
	return nil
}
