package workshop

import (
	"errors"
	"log/slog"

	"github.com/nbelhadj/maintenance-management/internal"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateWorkshop(dto WorkshopDTO) (*Workshop, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	ws := &Workshop{Name: dto.Name}
	if err := s.repo.CreateWorkshop(ws); err != nil {
		return nil, internal.NewInternalError("failed to create workshop", err)
	}
	return ws, nil
}

func (s *Service) GetWorkshop(id int64) (*Workshop, error) {
	ws, err := s.repo.GetWorkshop(id)
	if err != nil {
		return nil, s.wrapErr(err)
	}
	return ws, nil
}

func (s *Service) ListWorkshops() ([]*Workshop, error) {
	workshops, err := s.repo.ListWorkshops()
	if err != nil {
		return nil, internal.NewInternalError("failed to list workshops", err)
	}
	return workshops, nil
}

func (s *Service) UpdateWorkshop(id int64, dto WorkshopDTO) (*Workshop, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	ws, err := s.repo.GetWorkshop(id)
	if err != nil {
		return nil, s.wrapErr(err)
	}
	ws.Name = dto.Name
	if err := s.repo.UpdateWorkshop(ws); err != nil {
		return nil, internal.NewInternalError("failed to update workshop", err)
	}
	return ws, nil
}

// DeleteWorkshop cascades to the workshop's equipment and failure reports.
func (s *Service) DeleteWorkshop(id int64) error {
	if _, err := s.repo.GetWorkshop(id); err != nil {
		return s.wrapErr(err)
	}
	if err := s.repo.DeleteWorkshop(id); err != nil {
		return internal.NewInternalError("failed to delete workshop", err)
	}
	s.logger.Info("workshop deleted", "workshop_id", id)
	return nil
}

func (s *Service) CreateEquipment(dto EquipmentDTO) (*Equipment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetWorkshop(dto.WorkshopID); err != nil {
		return nil, s.wrapErr(err)
	}
	eq := &Equipment{Name: dto.Name, WorkshopID: dto.WorkshopID}
	if err := s.repo.CreateEquipment(eq); err != nil {
		return nil, internal.NewInternalError("failed to create equipment", err)
	}
	return eq, nil
}

func (s *Service) GetEquipment(id int64) (*Equipment, error) {
	eq, err := s.repo.GetEquipment(id)
	if err != nil {
		return nil, s.wrapErr(err)
	}
	return eq, nil
}

func (s *Service) ListEquipment() ([]*Equipment, error) {
	equipment, err := s.repo.ListEquipment()
	if err != nil {
		return nil, internal.NewInternalError("failed to list equipment", err)
	}
	return equipment, nil
}

func (s *Service) UpdateEquipment(id int64, dto EquipmentDTO) (*Equipment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	eq, err := s.repo.GetEquipment(id)
	if err != nil {
		return nil, s.wrapErr(err)
	}
	if _, err := s.repo.GetWorkshop(dto.WorkshopID); err != nil {
		return nil, s.wrapErr(err)
	}
	eq.Name = dto.Name
	eq.WorkshopID = dto.WorkshopID
	if err := s.repo.UpdateEquipment(eq); err != nil {
		return nil, internal.NewInternalError("failed to update equipment", err)
	}
	return eq, nil
}

func (s *Service) DeleteEquipment(id int64) error {
	if _, err := s.repo.GetEquipment(id); err != nil {
		return s.wrapErr(err)
	}
	if err := s.repo.DeleteEquipment(id); err != nil {
		return internal.NewInternalError("failed to delete equipment", err)
	}
	return nil
}

func (s *Service) wrapErr(err error) error {
	switch {
	case errors.Is(err, ErrWorkshopNotFound):
		return internal.NewNotFoundError("workshop not found", internal.ErrCodeWorkshopNotFound)
	case errors.Is(err, ErrEquipmentNotFound):
		return internal.NewNotFoundError("equipment not found", internal.ErrCodeEquipmentNotFound)
	}
	return internal.NewInternalError("workshop lookup failed", err)
}
