package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	attendanceerrors "guardshift/internal/attendance/errors"
	"guardshift/internal/authz"
	"guardshift/internal/comment"
	"guardshift/internal/events"
	"guardshift/internal/guard"
	guarderrors "guardshift/internal/guard/errors"
	"guardshift/internal/location"
	"guardshift/internal/messaging/kafka"
	"guardshift/internal/override"
	"guardshift/internal/payroll"
	"guardshift/internal/shared/apperror"
	"guardshift/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Mark(ctx context.Context, p authz.Principal, req MarkRequest) (string, error)
	BulkMark(ctx context.Context, p authz.Principal, req BulkMarkRequest) (BulkMarkResult, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
	Delete(ctx context.Context, p authz.Principal, id, reason string) error
	ListDeleted(ctx context.Context) ([]DeletedAttendanceResponse, error)
	Restore(ctx context.Context, p authz.Principal, deletedID string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	guards    guard.Repository
	locations location.Repository
	overrides override.Repository
	payrolls  payroll.Repository
	comments  comment.Repository
	outbox    kafka.OutboxRepository
}

func NewService(
	db *sql.DB,
	repo Repository,
	guards guard.Repository,
	locations location.Repository,
	overrides override.Repository,
	payrolls payroll.Repository,
	comments comment.Repository,
	outbox kafka.OutboxRepository,
) Service {
	return &service{
		db:        db,
		repo:      repo,
		guards:    guards,
		locations: locations,
		overrides: overrides,
		payrolls:  payrolls,
		comments:  comments,
		outbox:    outbox,
	}
}

// Mark records one guard's status for today and the given shift. Re-marking
// overwrites the previous status; there is no conflict on a second submission.
func (s *service) Mark(ctx context.Context, p authz.Principal, req MarkRequest) (string, error) {
	g, err := s.guards.FindByID(ctx, req.GuardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", guarderrors.ErrGuardNotFound
		}
		return "", err
	}

	date := today()

	// The guard may be relocated by an override; accessibility is judged
	// against where they actually stand today.
	actualShift := g.ShiftType
	actualLocationID := g.LocationID
	actualAccessible := g.Location != nil && g.Location.IsAccessible

	o, err := s.overrides.FindActiveByGuardAndDate(ctx, req.GuardID, date)
	switch {
	case err == nil:
		actualShift = o.OverrideShift
		actualLocationID = o.OverrideLocationID
		actualAccessible = o.OverrideLocation != nil && o.OverrideLocation.IsAccessible
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no override, home assignment stands
	default:
		return "", err
	}

	if !actualAccessible {
		return "", guarderrors.ErrLocationNotAccessible
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	alreadyMarked, err := txRepo.HasStatus(ctx, req.GuardID, date, req.Shift)
	if err != nil {
		return "", err
	}

	row := &Attendance{
		ID:       uuid.New(),
		GuardID:  g.ID,
		Date:     date,
		Shift:    req.Shift,
		Status:   req.Status,
		Notes:    req.Notes,
		MarkedBy: p.Username,
	}
	if err := txRepo.Upsert(ctx, row); err != nil {
		return "", err
	}

	if err := s.payrolls.WithTx(tx).Create(ctx, &payroll.PayrollTracking{
		GuardID:             g.ID,
		Date:                date,
		ScheduledShift:      g.ShiftType,
		ActualShift:         actualShift,
		ScheduledLocationID: g.LocationID,
		ActualLocationID:    actualLocationID,
		Status:              req.Status,
		CreatedBy:           p.Username,
	}); err != nil {
		return "", err
	}

	// Notify only on the first submission for this guard/date/shift, not on
	// every correction.
	if !alreadyMarked {
		if err := s.enqueueSubmittedEvent(ctx, tx, p.Username, req.Shift, date, actualLocationID.String(), 1); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	if alreadyMarked {
		return fmt.Sprintf("Attendance updated for %s.", g.Name), nil
	}
	return fmt.Sprintf("Attendance recorded for %s.", g.Name), nil
}

// BulkMark applies one status to a location's static home roster for a shift.
// Guards relocated INTO the location by an override are deliberately not
// included; they are marked individually. Rows that already carry a status
// are skipped, never overwritten.
func (s *service) BulkMark(ctx context.Context, p authz.Principal, req BulkMarkRequest) (BulkMarkResult, error) {
	loc, err := s.locations.FindByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BulkMarkResult{}, apperror.ErrNotFound
		}
		return BulkMarkResult{}, err
	}
	if !loc.IsAccessible {
		return BulkMarkResult{}, guarderrors.ErrLocationNotAccessible
	}

	guards, err := s.guards.FindActiveByLocationAndShift(ctx, req.LocationID, req.Shift)
	if err != nil {
		return BulkMarkResult{}, err
	}

	date := today()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BulkMarkResult{}, err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	txPayroll := s.payrolls.WithTx(tx)

	var marked, skipped int
	for _, g := range guards {
		wrote, err := txRepo.UpsertIfUnmarked(ctx, &Attendance{
			ID:       uuid.New(),
			GuardID:  g.ID,
			Date:     date,
			Shift:    req.Shift,
			Status:   req.Status,
			MarkedBy: p.Username,
		})
		if err != nil {
			return BulkMarkResult{}, err
		}
		if !wrote {
			skipped++
			continue
		}
		marked++

		// Bulk marks cover the home roster, so scheduled == actual.
		if err := txPayroll.Create(ctx, &payroll.PayrollTracking{
			GuardID:             g.ID,
			Date:                date,
			ScheduledShift:      g.ShiftType,
			ActualShift:         req.Shift,
			ScheduledLocationID: g.LocationID,
			ActualLocationID:    g.LocationID,
			Status:              req.Status,
			CreatedBy:           p.Username,
		}); err != nil {
			return BulkMarkResult{}, err
		}
	}

	if marked > 0 {
		if err := s.enqueueSubmittedEvent(ctx, tx, p.Username, req.Shift, date, req.LocationID, marked); err != nil {
			return BulkMarkResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return BulkMarkResult{}, err
	}

	msg := fmt.Sprintf("%d guards marked successfully.", marked)
	if skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped as they were already marked.)", skipped)
	}

	return BulkMarkResult{Marked: marked, Skipped: skipped, Message: msg}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]AttendanceResponse, 0, len(rows))
	for _, row := range rows {
		resp := AttendanceResponse{
			ID:        row.ID.String(),
			GuardID:   row.GuardID.String(),
			Date:      row.Date.Format("2006-01-02"),
			Shift:     row.Shift,
			Status:    row.Status,
			Notes:     row.Notes,
			MarkedBy:  row.MarkedBy,
			Timestamp: row.Timestamp.Format(time.RFC3339),
		}
		if row.Guard != nil {
			resp.GuardName = row.Guard.Name
			if row.Guard.Location != nil {
				resp.Location = row.Guard.Location.Name
				if row.Guard.Location.Company != nil {
					resp.Company = row.Guard.Location.Company.Name
				}
			}
		}

		// Latest same-day comment, best effort; listing never fails over it.
		if c, err := s.comments.LatestActiveForGuardOnDate(ctx, row.GuardID.String(), row.Date); err == nil {
			resp.Comment = c.Comment
		}

		out = append(out, resp)
	}
	return out, nil
}

// Delete moves the record into the deleted_attendances shadow table so it can
// be restored later.
func (s *service) Delete(ctx context.Context, p authz.Principal, id, reason string) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendanceerrors.ErrAttendanceNotFound
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.InsertDeleted(ctx, &DeletedAttendance{
		ID:                   uuid.New(),
		OriginalAttendanceID: row.ID,
		GuardID:              row.GuardID,
		Date:                 row.Date,
		Shift:                row.Shift,
		Status:               row.Status,
		Notes:                row.Notes,
		MarkedBy:             row.MarkedBy,
		Timestamp:            row.Timestamp,
		DeletedBy:            p.Username,
		DeletionReason:       reason,
	}); err != nil {
		return err
	}

	if err := txRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendanceerrors.ErrAttendanceNotFound
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, zap.L()).Info("attendance record deleted",
		zap.String("attendance_id", id),
		zap.String("deleted_by", p.Username),
	)
	return nil
}

func (s *service) ListDeleted(ctx context.Context) ([]DeletedAttendanceResponse, error) {
	rows, err := s.repo.FindAllDeleted(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DeletedAttendanceResponse, 0, len(rows))
	for _, row := range rows {
		resp := DeletedAttendanceResponse{
			ID:             row.ID.String(),
			GuardID:        row.GuardID.String(),
			Date:           row.Date.Format("2006-01-02"),
			Shift:          row.Shift,
			Status:         row.Status,
			DeletedBy:      row.DeletedBy,
			DeletedAt:      row.DeletedAt.Format(time.RFC3339),
			DeletionReason: row.DeletionReason,
		}
		if row.Guard != nil {
			resp.GuardName = row.Guard.Name
		}
		out = append(out, resp)
	}
	return out, nil
}

// Restore moves a snapshot back into attendances. If a new record was written
// for the same guard/date/shift since the deletion, the restore is refused
// rather than clobbering it.
func (s *service) Restore(ctx context.Context, p authz.Principal, deletedID string) error {
	snapshot, err := s.repo.FindDeletedByID(ctx, deletedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendanceerrors.ErrDeletedRecordNotFound
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	restored, err := txRepo.InsertRestored(ctx, snapshot)
	if err != nil {
		return err
	}
	if !restored {
		return attendanceerrors.ErrRestoreConflict
	}

	if err := txRepo.RemoveDeleted(ctx, deletedID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, zap.L()).Info("attendance record restored",
		zap.String("deleted_id", deletedID),
		zap.String("restored_by", p.Username),
	)
	return nil
}

func (s *service) enqueueSubmittedEvent(ctx context.Context, tx *sql.Tx, markedBy, shift string, date time.Time, locationID string, guardCount int) error {
	payload, err := json.Marshal(events.AttendanceSubmittedEvent{
		EventType:  "attendance.submitted",
		MarkedBy:   markedBy,
		Shift:      shift,
		Date:       date.Format("2006-01-02"),
		LocationID: locationID,
		GuardCount: guardCount,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance",
		AggregateID:   locationID,
		EventType:     "attendance.submitted",
		Topic:         events.AttendanceSubmittedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
