package stock

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

func (s *Service) Create(dto ItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	item := &Item{}
	dto.apply(item)
	if err := s.repo.Create(item); err != nil {
		return nil, s.wrapSaveErr(err)
	}
	s.logger.Info("stock item created", "stock_id", item.ID, "reference", item.Reference)
	return item, nil
}

func (s *Service) GetByID(id int64) (*Item, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}
	return item, nil
}

func (s *Service) List() ([]*Item, error) {
	items, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("failed to list stock items", err)
	}
	return items, nil
}

func (s *Service) Update(id int64, dto ItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}
	dto.apply(item)
	if err := s.repo.Update(item); err != nil {
		return nil, s.wrapSaveErr(err)
	}
	return item, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return s.wrapLookupErr(err)
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete stock item", err)
	}
	return nil
}

func (s *Service) wrapLookupErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.NewNotFoundError("stock item not found", internal.ErrCodeStockNotFound)
	}
	return internal.NewInternalError("failed to load stock item", err)
}

func (s *Service) wrapSaveErr(err error) error {
	if errors.Is(err, ErrReferenceTaken) {
		return internal.NewConflictError("cette référence existe déjà", internal.ErrCodeReferenceTaken)
	}
	return internal.NewInternalError("failed to save stock item", err)
}
