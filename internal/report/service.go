package report

import (
	"errors"
	"log/slog"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/workshop"
)

// AssetChecker resolves the workshop/equipment pair a report points at.
// Implemented by the workshop service.
type AssetChecker interface {
	GetWorkshop(id int64) (*workshop.Workshop, error)
	GetEquipment(id int64) (*workshop.Equipment, error)
}

type Service struct {
	repo   Repository
	assets AssetChecker
	logger *slog.Logger
}

func NewService(repo Repository, assets AssetChecker, logger *slog.Logger) *Service {
	return &Service{repo: repo, assets: assets, logger: logger}
}

func (s *Service) Create(dto ReportDTO) (*ReportResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkAssets(dto); err != nil {
		return nil, err
	}

	rep := &FailureReport{}
	dto.apply(rep)
	if err := s.repo.Create(rep); err != nil {
		return nil, internal.NewInternalError("failed to create failure report", err)
	}
	s.logger.Info("failure report created", "report_id", rep.ID, "workshop_id", rep.WorkshopID, "equipment_id", rep.EquipmentID)
	return toResponse(rep), nil
}

func (s *Service) GetByID(id int64) (*ReportResponse, error) {
	rep, err := s.repo.GetByID(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}
	return toResponse(rep), nil
}

func (s *Service) List() ([]*ReportResponse, error) {
	reports, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("failed to list failure reports", err)
	}
	out := make([]*ReportResponse, len(reports))
	for i, r := range reports {
		out[i] = toResponse(r)
	}
	return out, nil
}

// Update rewrites the report; the elapsed duration is recomputed on every
// save, never trusted from the payload.
func (s *Service) Update(id int64, dto ReportDTO) (*ReportResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	rep, err := s.repo.GetByID(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}
	if err := s.checkAssets(dto); err != nil {
		return nil, err
	}

	dto.apply(rep)
	if err := s.repo.Update(rep); err != nil {
		return nil, internal.NewInternalError("failed to update failure report", err)
	}
	return toResponse(rep), nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return s.wrapLookupErr(err)
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete failure report", err)
	}
	return nil
}

func (s *Service) checkAssets(dto ReportDTO) error {
	if _, err := s.assets.GetWorkshop(dto.WorkshopID); err != nil {
		return err
	}
	if _, err := s.assets.GetEquipment(dto.EquipmentID); err != nil {
		return err
	}
	return nil
}

func (s *Service) wrapLookupErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.NewNotFoundError("failure report not found", internal.ErrCodeReportNotFound)
	}
	return internal.NewInternalError("failed to load failure report", err)
}
