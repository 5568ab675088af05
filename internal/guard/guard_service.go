package guard

import (
	"context"
	"errors"
	"time"

	guarderrors "guardshift/internal/guard/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateGuardRequest) (GuardResponse, error)
	GetByID(ctx context.Context, id string) (GuardResponse, error)
	ListByLocation(ctx context.Context, locationID string) ([]GuardResponse, error)
	Deactivate(ctx context.Context, id string, req DeactivateGuardRequest) (GuardResponse, error)
	Reactivate(ctx context.Context, id string) (GuardResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateGuardRequest) (GuardResponse, error) {
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return GuardResponse{}, guarderrors.ErrGuardNotFound
	}

	role := req.Role
	if role == "" {
		role = RoleGuard
	}

	row := &Guard{
		ID:         uuid.New(),
		Name:       req.Name,
		LocationID: locationID,
		ShiftType:  req.ShiftType,
		Role:       role,
		IsActive:   true,
		Notes:      req.Notes,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return GuardResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByID(ctx context.Context, id string) (GuardResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GuardResponse{}, guarderrors.ErrGuardNotFound
		}
		return GuardResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ListByLocation(ctx context.Context, locationID string) ([]GuardResponse, error) {
	rows, err := s.repo.FindAllByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	res := make([]GuardResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

// Deactivate marks a guard resigned. The row stays in place so historical
// attendance and overrides keep resolving.
func (s *service) Deactivate(ctx context.Context, id string, req DeactivateGuardRequest) (GuardResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GuardResponse{}, guarderrors.ErrGuardNotFound
		}
		return GuardResponse{}, err
	}

	resigned := time.Now().UTC().Truncate(24 * time.Hour)
	if req.ResignedDate != "" {
		resigned, _ = time.Parse("2006-01-02", req.ResignedDate)
	}

	row.IsActive = false
	row.ResignedDate = &resigned

	if err := s.repo.Update(ctx, row); err != nil {
		return GuardResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Reactivate(ctx context.Context, id string) (GuardResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GuardResponse{}, guarderrors.ErrGuardNotFound
		}
		return GuardResponse{}, err
	}

	row.IsActive = true
	row.ResignedDate = nil

	if err := s.repo.Update(ctx, row); err != nil {
		return GuardResponse{}, err
	}
	return mapToResponse(*row), nil
}
