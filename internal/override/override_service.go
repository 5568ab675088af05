package override

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"guardshift/internal/authz"
	"guardshift/internal/events"
	"guardshift/internal/guard"
	guarderrors "guardshift/internal/guard/errors"
	overrideerrors "guardshift/internal/override/errors"
	"guardshift/internal/messaging/kafka"
	"guardshift/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CreateOrUpdate(ctx context.Context, p authz.Principal, req CreateOverrideRequest) (OverrideResponse, error)
	Remove(ctx context.Context, p authz.Principal, guardID string, date time.Time) error
	ShiftInfo(ctx context.Context, guardID string) (ShiftInfoResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	guards guard.Repository
	outbox kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository, guards guard.Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, guards: guards, outbox: outbox}
}

// CreateOrUpdate upserts the active override for (guard, date). A second
// override for the same guard and date replaces the first's target in place;
// the original_* snapshot from creation time is preserved.
func (s *service) CreateOrUpdate(ctx context.Context, p authz.Principal, req CreateOverrideRequest) (OverrideResponse, error) {
	g, err := s.guards.FindByID(ctx, req.GuardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OverrideResponse{}, guarderrors.ErrGuardNotFound
		}
		return OverrideResponse{}, err
	}

	targetDate := today()
	if req.Date != "" {
		targetDate, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return OverrideResponse{}, overrideerrors.ErrInvalidDate
		}
	}

	// A shift-only change keeps the guard at their home location.
	overrideLocationID := g.LocationID
	if req.OverrideLocationID != "" {
		overrideLocationID, err = uuid.Parse(req.OverrideLocationID)
		if err != nil {
			return OverrideResponse{}, overrideerrors.ErrInvalidLocation
		}
	}

	row := &ShiftOverride{
		ID:                 uuid.New(),
		GuardID:            g.ID,
		OriginalShift:      g.ShiftType,
		OverrideShift:      req.OverrideShift,
		OriginalLocationID: g.LocationID,
		OverrideLocationID: overrideLocationID,
		Date:               targetDate,
		Reason:             req.Reason,
		CreatedBy:          p.Username,
		IsActive:           true,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OverrideResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Upsert(ctx, row); err != nil {
		return OverrideResponse{}, err
	}

	if err := s.enqueueEvent(ctx, tx, "shift_override.created", row, g.Name); err != nil {
		return OverrideResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OverrideResponse{}, err
	}

	// Re-read so the response reflects the surviving row's snapshot, not the
	// candidate insert (the upsert may have hit the update path).
	stored, err := s.repo.FindActiveByGuardAndDate(ctx, g.ID.String(), targetDate)
	if err != nil {
		return OverrideResponse{}, err
	}

	return OverrideResponse{
		GuardID:            stored.GuardID.String(),
		GuardName:          g.Name,
		OriginalShift:      stored.OriginalShift,
		OverrideShift:      stored.OverrideShift,
		OriginalLocationID: stored.OriginalLocationID.String(),
		OverrideLocationID: stored.OverrideLocationID.String(),
		Date:               stored.Date.Format("2006-01-02"),
		Reason:             stored.Reason,
		CreatedBy:          stored.CreatedBy,
		IsShiftChanged:     stored.OriginalShift != stored.OverrideShift,
		IsLocationChanged:  stored.OriginalLocationID != stored.OverrideLocationID,
	}, nil
}

// Remove deactivates the active override for (guard, date). Past rows are
// kept for audit; only the active flag flips.
func (s *service) Remove(ctx context.Context, p authz.Principal, guardID string, date time.Time) error {
	if err := s.repo.Deactivate(ctx, guardID, date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return overrideerrors.ErrOverrideNotFound
		}
		return err
	}

	contextutil.GetLogger(ctx, zap.L()).Info("shift override removed",
		zap.String("guard_id", guardID),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("removed_by", p.Username),
	)
	return nil
}

func (s *service) ShiftInfo(ctx context.Context, guardID string) (ShiftInfoResponse, error) {
	g, err := s.guards.FindByID(ctx, guardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftInfoResponse{}, guarderrors.ErrGuardNotFound
		}
		return ShiftInfoResponse{}, err
	}

	resp := ShiftInfoResponse{
		GuardID:      g.ID.String(),
		GuardName:    g.Name,
		DefaultShift: g.ShiftType,
	}
	if g.Location != nil {
		resp.DefaultLocation = g.Location.Name
		if g.Location.Company != nil {
			resp.DefaultCompany = g.Location.Company.Name
		}
	}

	// No override: current == default.
	resp.CurrentShift = resp.DefaultShift
	resp.CurrentLocation = resp.DefaultLocation
	resp.CurrentCompany = resp.DefaultCompany

	o, err := s.repo.FindActiveByGuardAndDate(ctx, guardID, today())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return ShiftInfoResponse{}, err
	}

	resp.HasOverride = true
	resp.CurrentShift = o.OverrideShift
	resp.OverrideReason = o.Reason
	resp.OverrideCreatedBy = o.CreatedBy
	resp.IsShiftChanged = o.OriginalShift != o.OverrideShift
	resp.IsLocationChanged = o.OriginalLocationID != o.OverrideLocationID
	if o.OverrideLocation != nil {
		resp.CurrentLocation = o.OverrideLocation.Name
		if o.OverrideLocation.Company != nil {
			resp.CurrentCompany = o.OverrideLocation.Company.Name
		}
	}

	return resp, nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, eventType string, row *ShiftOverride, guardName string) error {
	payload, err := json.Marshal(events.ShiftOverrideEvent{
		EventType:        eventType,
		GuardID:          row.GuardID.String(),
		GuardName:        guardName,
		OverrideShift:    row.OverrideShift,
		OverrideLocation: row.OverrideLocationID.String(),
		Date:             row.Date.Format("2006-01-02"),
		Reason:           row.Reason,
		CreatedBy:        row.CreatedBy,
		OccurredAt:       time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "shift_override",
		AggregateID:   row.GuardID.String(),
		EventType:     eventType,
		Topic:         events.ShiftOverrideTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
