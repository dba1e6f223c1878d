package report

import (
	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/core/types"
)

// ReportDTO is the create/update payload for a failure report.
type ReportDTO struct {
	WorkshopID           int64           `json:"atelier"`
	EquipmentID          int64           `json:"equipement"`
	FailureDate          types.Date      `json:"date_defaillance"`
	StartTime            types.TimeOfDay `json:"heure_debut"`
	EndTime              types.TimeOfDay `json:"heure_fin"`
	MaintenanceMethod    string          `json:"methode_entretien"`
	FailureNature        string          `json:"nature_panne"`
	FailureCause         string          `json:"cause_panne"`
	Severity             string          `json:"indice_gravite"`
	SpareParts           string          `json:"piece_rechange"`
	WorkDone             string          `json:"travaux_effectues"`
	ImmediateActionState string          `json:"etat_action_immediate"`
	Pilot                string          `json:"pilote"`
}

func (dto ReportDTO) Validate() error {
	if dto.WorkshopID <= 0 {
		return internal.NewValidationError("le champ 'atelier' est requis", internal.ErrCodeValidationFailed)
	}
	if dto.EquipmentID <= 0 {
		return internal.NewValidationError("le champ 'equipement' est requis", internal.ErrCodeValidationFailed)
	}
	if dto.FailureDate.IsZero() {
		return internal.NewValidationError("le champ 'date_defaillance' est requis", internal.ErrCodeInvalidDate)
	}
	return nil
}

// ReportResponse is the serialized report; heuregen carries the computed
// duration as "H:MM:SS" like the original API.
type ReportResponse struct {
	ID                   int64           `json:"id"`
	WorkshopID           int64           `json:"atelier"`
	EquipmentID          int64           `json:"equipement"`
	FailureDate          types.Date      `json:"date_defaillance"`
	StartTime            types.TimeOfDay `json:"heure_debut"`
	EndTime              types.TimeOfDay `json:"heure_fin"`
	Elapsed              string          `json:"heuregen"`
	MaintenanceMethod    string          `json:"methode_entretien"`
	FailureNature        string          `json:"nature_panne"`
	FailureCause         string          `json:"cause_panne"`
	Severity             string          `json:"indice_gravite"`
	SpareParts           string          `json:"piece_rechange"`
	WorkDone             string          `json:"travaux_effectues"`
	ImmediateActionState string          `json:"etat_action_immediate"`
	Pilot                string          `json:"pilote"`
}

func toResponse(r *FailureReport) *ReportResponse {
	return &ReportResponse{
		ID:                   r.ID,
		WorkshopID:           r.WorkshopID,
		EquipmentID:          r.EquipmentID,
		FailureDate:          r.FailureDate,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Elapsed:              types.FormatDuration(r.Elapsed()),
		MaintenanceMethod:    r.MaintenanceMethod,
		FailureNature:        r.FailureNature,
		FailureCause:         r.FailureCause,
		Severity:             r.Severity,
		SpareParts:           r.SpareParts,
		WorkDone:             r.WorkDone,
		ImmediateActionState: r.ImmediateActionState,
		Pilot:                r.Pilot,
	}
}

func (dto ReportDTO) apply(r *FailureReport) {
	r.WorkshopID = dto.WorkshopID
	r.EquipmentID = dto.EquipmentID
	r.FailureDate = dto.FailureDate
	r.StartTime = dto.StartTime
	r.EndTime = dto.EndTime
	r.MaintenanceMethod = dto.MaintenanceMethod
	r.FailureNature = dto.FailureNature
	r.FailureCause = dto.FailureCause
	r.Severity = dto.Severity
	r.SpareParts = dto.SpareParts
	r.WorkDone = dto.WorkDone
	r.ImmediateActionState = dto.ImmediateActionState
	r.Pilot = dto.Pilot
	r.ComputeElapsed()
}
