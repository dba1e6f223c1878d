package report

import (
	"errors"
	"time"

	"github.com/nbelhadj/maintenance-management/internal/core/types"
)

// FailureReport ("formulaire") is a maintenance incident filed against a
// workshop/equipment pair. Elapsed is derived from the start and end
// time-of-day fields and recomputed on every save.
type FailureReport struct {
	ID                   int64           `gorm:"primaryKey"`
	WorkshopID           int64           `gorm:"column:atelier_id;not null"`
	EquipmentID          int64           `gorm:"column:equipement_id;not null"`
	FailureDate          types.Date      `gorm:"column:date_defaillance"`
	StartTime            types.TimeOfDay `gorm:"column:heure_debut"`
	EndTime              types.TimeOfDay `gorm:"column:heure_fin"`
	ElapsedSeconds       int64           `gorm:"column:heuregen_secondes"`
	MaintenanceMethod    string          `gorm:"column:methode_entretien"`
	FailureNature        string          `gorm:"column:nature_panne"`
	FailureCause         string          `gorm:"column:cause_panne"`
	Severity             string          `gorm:"column:indice_gravite"`
	SpareParts           string          `gorm:"column:piece_rechange"`
	WorkDone             string          `gorm:"column:travaux_effectues"`
	ImmediateActionState string          `gorm:"column:etat_action_immediate"`
	Pilot                string          `gorm:"column:pilote"`
}

func (FailureReport) TableName() string {
	return "formulaires"
}

// ComputeElapsed derives the intervention duration from the start and end
// times. An end before the start means the shift ran past midnight, so a full
// day is added before subtracting.
func (r *FailureReport) ComputeElapsed() {
	start := r.StartTime.Elapsed()
	end := r.EndTime.Elapsed()
	if end < start {
		end += 24 * time.Hour
	}
	r.ElapsedSeconds = int64((end - start).Seconds())
}

// Elapsed returns the computed intervention duration.
func (r *FailureReport) Elapsed() time.Duration {
	return time.Duration(r.ElapsedSeconds) * time.Second
}

type Repository interface {
	Create(rep *FailureReport) error
	GetByID(id int64) (*FailureReport, error)
	List() ([]*FailureReport, error)
	Update(rep *FailureReport) error
	Delete(id int64) error
}

var ErrNotFound = errors.New("failure report not found")
