package roster

import (
	"context"
	"errors"
	"time"

	"guardshift/internal/attendance"
	"guardshift/internal/comment"
	"guardshift/internal/guard"
	guarderrors "guardshift/internal/guard/errors"
	"guardshift/internal/location"
	"guardshift/internal/override"
	"guardshift/internal/shared/apperror"

	"gorm.io/gorm"
)

type Service interface {
	// Resolve answers "who is working at this location, on this shift, on
	// this date" with overrides applied. A zero date means today.
	Resolve(ctx context.Context, locationID, shift string, date time.Time) ([]RosterEntry, error)
}

type service struct {
	locations   location.Repository
	guards      guard.Repository
	overrides   override.Repository
	attendances attendance.Repository
	comments    comment.Repository
}

func NewService(
	locations location.Repository,
	guards guard.Repository,
	overrides override.Repository,
	attendances attendance.Repository,
	comments comment.Repository,
) Service {
	return &service{
		locations:   locations,
		guards:      guards,
		overrides:   overrides,
		attendances: attendances,
		comments:    comments,
	}
}

func (s *service) Resolve(ctx context.Context, locationID, shift string, date time.Time) ([]RosterEntry, error) {
	if !guard.ValidShift(shift) {
		return nil, guarderrors.ErrInvalidShift
	}
	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	loc, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if !loc.IsAccessible {
		return nil, guarderrors.ErrLocationNotAccessible
	}

	regulars, err := s.guards.FindActiveByLocationAndShift(ctx, locationID, shift)
	if err != nil {
		return nil, err
	}

	inbound, err := s.overrides.FindActiveInbound(ctx, locationID, shift, date)
	if err != nil {
		return nil, err
	}

	result := make([]RosterEntry, 0, len(regulars)+len(inbound))
	seen := make(map[string]struct{}, len(regulars)+len(inbound))

	// Pass 1: the static home roster. A guard overridden to a DIFFERENT
	// location is working elsewhere today and is excluded; a same-location
	// override (shift change) keeps them here with override metadata.
	for _, g := range regulars {
		o, err := s.overrides.FindActiveByGuardAndDate(ctx, g.ID.String(), date)
		hasOverride := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if hasOverride && o.OverrideLocationID.String() != locationID {
			continue
		}

		entry := RosterEntry{
			GuardID:      g.ID.String(),
			Name:         g.Name,
			Role:         g.Role,
			DefaultShift: g.ShiftType,
			CurrentShift: g.ShiftType,
			HasOverride:  hasOverride,
			IsTemporary:  false,
		}
		if hasOverride {
			entry.CurrentShift = o.OverrideShift
			entry.OverrideReason = o.Reason
			entry.IsShiftChanged = o.OriginalShift != o.OverrideShift
			entry.IsLocationChanged = o.OriginalLocationID != o.OverrideLocationID
		}

		s.attachDayRecords(ctx, &entry, date, shift)
		result = append(result, entry)
		seen[entry.GuardID] = struct{}{}
	}

	// Pass 2: guards relocated in by an override. De-dup guards already on
	// the list (a same-location shift change satisfies both passes).
	for _, o := range inbound {
		guardID := o.GuardID.String()
		if _, ok := seen[guardID]; ok {
			continue
		}

		entry := RosterEntry{
			GuardID:           guardID,
			DefaultShift:      o.OriginalShift,
			CurrentShift:      o.OverrideShift,
			HasOverride:       true,
			IsTemporary:       true,
			OverrideReason:    o.Reason,
			IsShiftChanged:    o.OriginalShift != o.OverrideShift,
			IsLocationChanged: true,
		}
		if o.Guard != nil {
			entry.Name = o.Guard.Name
			entry.Role = o.Guard.Role
			entry.DefaultShift = o.Guard.ShiftType
		}
		if o.OriginalLocation != nil {
			entry.OriginalLocation = o.OriginalLocation.Name
			if o.OriginalLocation.Company != nil {
				entry.OriginalCompany = o.OriginalLocation.Company.Name
			}
		}

		s.attachDayRecords(ctx, &entry, date, shift)
		result = append(result, entry)
		seen[guardID] = struct{}{}
	}

	return result, nil
}

// attachDayRecords fills in the guard's attendance and latest comment for the
// date. Both are best effort; a missing record leaves the zero values.
func (s *service) attachDayRecords(ctx context.Context, entry *RosterEntry, date time.Time, shift string) {
	if a, err := s.attendances.FindByGuardDateShift(ctx, entry.GuardID, date, shift); err == nil {
		status := a.Status
		entry.Status = &status
		entry.Notes = a.Notes
	}
	if c, err := s.comments.LatestActiveForGuardOnDate(ctx, entry.GuardID, date); err == nil {
		entry.Comment = c.Comment
	}
}
