package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"guardshift/internal/attendance"
	attendanceerrors "guardshift/internal/attendance/errors"
	"guardshift/internal/authz"
	"guardshift/internal/comment"
	"guardshift/internal/guard"
	guarderrors "guardshift/internal/guard/errors"
	"guardshift/internal/location"
	"guardshift/internal/messaging/kafka"
	"guardshift/internal/override"
	"guardshift/internal/payroll"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---- fakes ----

type fakeAttendanceRepo struct {
	statuses map[string]string // key guard|date|shift -> status
	upserts  []attendance.Attendance
	deleted  map[string]*attendance.DeletedAttendance
	restores int
	conflict bool
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		statuses: map[string]string{},
		deleted:  map[string]*attendance.DeletedAttendance{},
	}
}

func key(guardID string, date time.Time, shift string) string {
	return guardID + "|" + date.Format("2006-01-02") + "|" + shift
}

func (f *fakeAttendanceRepo) WithTx(_ *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepo) Upsert(_ context.Context, a *attendance.Attendance) error {
	f.upserts = append(f.upserts, *a)
	f.statuses[key(a.GuardID.String(), a.Date, a.Shift)] = a.Status
	return nil
}

func (f *fakeAttendanceRepo) UpsertIfUnmarked(_ context.Context, a *attendance.Attendance) (bool, error) {
	k := key(a.GuardID.String(), a.Date, a.Shift)
	if f.statuses[k] != "" {
		return false, nil
	}
	f.upserts = append(f.upserts, *a)
	f.statuses[k] = a.Status
	return true, nil
}

func (f *fakeAttendanceRepo) HasStatus(_ context.Context, guardID string, date time.Time, shift string) (bool, error) {
	return f.statuses[key(guardID, date, shift)] != "", nil
}

func (f *fakeAttendanceRepo) FindByID(_ context.Context, id string) (*attendance.Attendance, error) {
	for i := range f.upserts {
		if f.upserts[i].ID.String() == id {
			return &f.upserts[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) FindByGuardDateShift(_ context.Context, guardID string, date time.Time, shift string) (*attendance.Attendance, error) {
	for i := range f.upserts {
		a := &f.upserts[i]
		if a.GuardID.String() == guardID && a.Shift == shift && a.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) FindAll(_ context.Context, _ attendance.ListFilter) ([]attendance.Attendance, error) {
	return f.upserts, nil
}

func (f *fakeAttendanceRepo) InsertDeleted(_ context.Context, d *attendance.DeletedAttendance) error {
	f.deleted[d.ID.String()] = d
	return nil
}

func (f *fakeAttendanceRepo) DeleteByID(_ context.Context, id string) error {
	for i := range f.upserts {
		if f.upserts[i].ID.String() == id {
			f.upserts = append(f.upserts[:i], f.upserts[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) FindDeletedByID(_ context.Context, id string) (*attendance.DeletedAttendance, error) {
	d, ok := f.deleted[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (f *fakeAttendanceRepo) FindAllDeleted(_ context.Context) ([]attendance.DeletedAttendance, error) {
	out := make([]attendance.DeletedAttendance, 0, len(f.deleted))
	for _, d := range f.deleted {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) InsertRestored(_ context.Context, _ *attendance.DeletedAttendance) (bool, error) {
	if f.conflict {
		return false, nil
	}
	f.restores++
	return true, nil
}

func (f *fakeAttendanceRepo) RemoveDeleted(_ context.Context, id string) error {
	delete(f.deleted, id)
	return nil
}

type fakeGuardRepo struct {
	guards map[string]*guard.Guard
}

func (f *fakeGuardRepo) Create(_ context.Context, _ *guard.Guard) error { return nil }

func (f *fakeGuardRepo) FindByID(_ context.Context, id string) (*guard.Guard, error) {
	g, ok := f.guards[id]
	if !ok {
		return &guard.Guard{}, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (f *fakeGuardRepo) FindActiveByLocationAndShift(_ context.Context, locationID, shift string) ([]guard.Guard, error) {
	var out []guard.Guard
	for _, g := range f.guards {
		if g.LocationID.String() == locationID && g.ShiftType == shift && g.IsActive {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGuardRepo) FindAllByLocation(_ context.Context, _ string) ([]guard.Guard, error) {
	return nil, nil
}

func (f *fakeGuardRepo) Update(_ context.Context, _ *guard.Guard) error { return nil }

type fakeLocationRepo struct {
	locations map[string]*location.Location
}

func (f *fakeLocationRepo) Create(_ context.Context, _ *location.Location) error { return nil }
func (f *fakeLocationRepo) FindAll(_ context.Context) ([]location.Location, error) {
	return nil, nil
}
func (f *fakeLocationRepo) FindAccessible(_ context.Context) ([]location.Location, error) {
	return nil, nil
}
func (f *fakeLocationRepo) FindByID(_ context.Context, id string) (*location.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return &location.Location{}, gorm.ErrRecordNotFound
	}
	return l, nil
}
func (f *fakeLocationRepo) FindAccessibleForShift(_ context.Context, _ string) ([]location.Location, error) {
	return nil, nil
}
func (f *fakeLocationRepo) SetAccessible(_ context.Context, _ string, _ bool) error { return nil }

type fakeOverrideRepo struct {
	overrides map[string]*override.ShiftOverride // key guard|date
}

func (f *fakeOverrideRepo) WithTx(_ *sql.Tx) override.Repository { return f }
func (f *fakeOverrideRepo) Upsert(_ context.Context, _ *override.ShiftOverride) error {
	return nil
}
func (f *fakeOverrideRepo) FindActiveByGuardAndDate(_ context.Context, guardID string, date time.Time) (*override.ShiftOverride, error) {
	o, ok := f.overrides[guardID+"|"+date.Format("2006-01-02")]
	if !ok {
		return &override.ShiftOverride{}, gorm.ErrRecordNotFound
	}
	return o, nil
}
func (f *fakeOverrideRepo) FindActiveInbound(_ context.Context, _, _ string, _ time.Time) ([]override.ShiftOverride, error) {
	return nil, nil
}
func (f *fakeOverrideRepo) Deactivate(_ context.Context, _ string, _ time.Time) error { return nil }

type fakePayrollRepo struct {
	rows []payroll.PayrollTracking
}

func (f *fakePayrollRepo) WithTx(_ *sql.Tx) payroll.Repository { return f }
func (f *fakePayrollRepo) Create(_ context.Context, row *payroll.PayrollTracking) error {
	f.rows = append(f.rows, *row)
	return nil
}
func (f *fakePayrollRepo) FindByGuardAndRange(_ context.Context, _ string, _, _ time.Time) ([]payroll.PayrollTracking, error) {
	return f.rows, nil
}

type fakeCommentRepo struct{}

func (f *fakeCommentRepo) Create(_ context.Context, _ *comment.GuardComment) error { return nil }
func (f *fakeCommentRepo) FindActiveByGuard(_ context.Context, _ string) ([]comment.GuardComment, error) {
	return nil, nil
}
func (f *fakeCommentRepo) FindByID(_ context.Context, _ string) (*comment.GuardComment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCommentRepo) Deactivate(_ context.Context, _ string) error { return nil }
func (f *fakeCommentRepo) LatestActiveForGuardOnDate(_ context.Context, _ string, _ time.Time) (*comment.GuardComment, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(_ *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(_ context.Context, e kafka.OutboxEvent) error {
	f.created = append(f.created, e)
	return nil
}
func (f *fakeOutbox) ListPending(_ context.Context, _ int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(_ context.Context, _ string) error { return nil }
func (f *fakeOutbox) MarkFailed(_ context.Context, _ string, _ string) error {
	return nil
}

// ---- fixtures ----

type fixture struct {
	service   attendance.Service
	repo      *fakeAttendanceRepo
	guards    *fakeGuardRepo
	locations *fakeLocationRepo
	overrides *fakeOverrideRepo
	payrolls  *fakePayrollRepo
	outbox    *fakeOutbox
	mock      sqlmock.Sqlmock

	homeLocation *location.Location
	guard        *guard.Guard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	locID := uuid.New()
	companyID := uuid.New()
	g := &guard.Guard{
		ID:         uuid.New(),
		Name:       "Ahmed Hassan",
		LocationID: locID,
		ShiftType:  guard.ShiftDay,
		Role:       guard.RoleGuard,
		IsActive:   true,
		Location: &guard.LocationRef{
			ID:           locID,
			Name:         "Harbor Gate",
			CompanyID:    companyID,
			IsAccessible: true,
		},
	}
	loc := &location.Location{
		ID:           locID,
		Name:         "Harbor Gate",
		CompanyID:    companyID,
		IsAccessible: true,
	}

	f := &fixture{
		repo:         newFakeAttendanceRepo(),
		guards:       &fakeGuardRepo{guards: map[string]*guard.Guard{g.ID.String(): g}},
		locations:    &fakeLocationRepo{locations: map[string]*location.Location{locID.String(): loc}},
		overrides:    &fakeOverrideRepo{overrides: map[string]*override.ShiftOverride{}},
		payrolls:     &fakePayrollRepo{},
		outbox:       &fakeOutbox{},
		mock:         mock,
		homeLocation: loc,
		guard:        g,
	}
	f.service = attendance.NewService(
		db, f.repo, f.guards, f.locations, f.overrides, f.payrolls, &fakeCommentRepo{}, f.outbox,
	)
	return f
}

func supervisor() authz.Principal {
	return authz.Principal{Username: "svetlana", Role: authz.RoleSupervisor}
}

func todayUTC() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// ---- tests ----

func TestService_Mark(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark records, emits event and payroll row", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		msg, err := f.service.Mark(ctx, supervisor(), attendance.MarkRequest{
			GuardID: f.guard.ID.String(),
			Status:  attendance.StatusPresent,
			Shift:   guard.ShiftDay,
		})

		require.NoError(t, err)
		assert.Contains(t, msg, "recorded")
		assert.Len(t, f.outbox.created, 1)
		assert.Equal(t, "attendance.submitted", f.outbox.created[0].EventType)

		require.Len(t, f.payrolls.rows, 1)
		assert.Equal(t, guard.ShiftDay, f.payrolls.rows[0].ScheduledShift)
		assert.Equal(t, guard.ShiftDay, f.payrolls.rows[0].ActualShift)
	})

	t.Run("re-mark overwrites without conflict and without a second event", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		_, err := f.service.Mark(ctx, supervisor(), attendance.MarkRequest{
			GuardID: f.guard.ID.String(), Status: attendance.StatusPresent, Shift: guard.ShiftDay,
		})
		require.NoError(t, err)

		msg, err := f.service.Mark(ctx, supervisor(), attendance.MarkRequest{
			GuardID: f.guard.ID.String(), Status: attendance.StatusAbsent, Shift: guard.ShiftDay,
		})
		require.NoError(t, err)
		assert.Contains(t, msg, "updated")

		k := f.guard.ID.String() + "|" + todayUTC().Format("2006-01-02") + "|" + guard.ShiftDay
		assert.Equal(t, attendance.StatusAbsent, f.repo.statuses[k])
		assert.Len(t, f.outbox.created, 1, "only the first submission notifies")
	})

	t.Run("unknown guard", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Mark(ctx, supervisor(), attendance.MarkRequest{
			GuardID: uuid.NewString(), Status: attendance.StatusPresent, Shift: guard.ShiftDay,
		})
		assert.ErrorIs(t, err, guarderrors.ErrGuardNotFound)
	})

	t.Run("inaccessible home location refused", func(t *testing.T) {
		f := newFixture(t)
		f.guard.Location.IsAccessible = false

		_, err := f.service.Mark(ctx, supervisor(), attendance.MarkRequest{
			GuardID: f.guard.ID.String(), Status: attendance.StatusPresent, Shift: guard.ShiftDay,
		})
		assert.ErrorIs(t, err, guarderrors.ErrLocationNotAccessible)
	})

	t.Run("override moves accessibility check and payroll to the actual location", func(t *testing.T) {
		f := newFixture(t)
		f.guard.Location.IsAccessible = false // home is closed today

		otherLoc := uuid.New()
		f.overrides.overrides[f.guard.ID.String()+"|"+todayUTC().Format("2006-01-02")] = &override.ShiftOverride{
			GuardID:            f.guard.ID,
			OriginalShift:      guard.ShiftDay,
			OverrideShift:      guard.ShiftNight,
			OriginalLocationID: f.guard.LocationID,
			OverrideLocationID: otherLoc,
			OverrideLocation: &override.LocationRef{
				ID:           otherLoc,
				Name:         "City Mall",
				IsAccessible: true,
			},
			IsActive: true,
		}

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		_, err := f.service.Mark(ctx, supervisor(), attendance.MarkRequest{
			GuardID: f.guard.ID.String(), Status: attendance.StatusPresent, Shift: guard.ShiftNight,
		})
		require.NoError(t, err)

		require.Len(t, f.payrolls.rows, 1)
		assert.Equal(t, guard.ShiftDay, f.payrolls.rows[0].ScheduledShift)
		assert.Equal(t, guard.ShiftNight, f.payrolls.rows[0].ActualShift)
		assert.Equal(t, otherLoc, f.payrolls.rows[0].ActualLocationID)
	})
}

func TestService_BulkMark(t *testing.T) {
	ctx := context.Background()

	addGuard := func(f *fixture, name string) *guard.Guard {
		g := &guard.Guard{
			ID:         uuid.New(),
			Name:       name,
			LocationID: f.homeLocation.ID,
			ShiftType:  guard.ShiftDay,
			IsActive:   true,
		}
		f.guards.guards[g.ID.String()] = g
		return g
	}

	t.Run("marks unmarked, skips marked", func(t *testing.T) {
		f := newFixture(t)
		second := addGuard(f, "Joseph Okello")

		// second guard already marked for today
		f.repo.statuses[key(second.ID.String(), todayUTC(), guard.ShiftDay)] = attendance.StatusPresent

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		res, err := f.service.BulkMark(ctx, supervisor(), attendance.BulkMarkRequest{
			LocationID: f.homeLocation.ID.String(),
			Shift:      guard.ShiftDay,
			Status:     attendance.StatusPresent,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Marked)
		assert.Equal(t, 1, res.Skipped)
		assert.Contains(t, res.Message, "skipped")

		require.Len(t, f.outbox.created, 1)
		assert.Len(t, f.payrolls.rows, 1)
	})

	t.Run("all skipped emits no event", func(t *testing.T) {
		f := newFixture(t)
		f.repo.statuses[key(f.guard.ID.String(), todayUTC(), guard.ShiftDay)] = attendance.StatusPresent

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		res, err := f.service.BulkMark(ctx, supervisor(), attendance.BulkMarkRequest{
			LocationID: f.homeLocation.ID.String(),
			Shift:      guard.ShiftDay,
			Status:     attendance.StatusPresent,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Marked)
		assert.Equal(t, 1, res.Skipped)
		assert.Empty(t, f.outbox.created)
	})

	t.Run("inaccessible location refused", func(t *testing.T) {
		f := newFixture(t)
		f.homeLocation.IsAccessible = false

		_, err := f.service.BulkMark(ctx, supervisor(), attendance.BulkMarkRequest{
			LocationID: f.homeLocation.ID.String(),
			Shift:      guard.ShiftDay,
			Status:     attendance.StatusPresent,
		})
		assert.ErrorIs(t, err, guarderrors.ErrLocationNotAccessible)
	})
}

func TestService_DeleteAndRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("delete snapshots then restore", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		_, err := f.service.Mark(ctx, supervisor(), attendance.MarkRequest{
			GuardID: f.guard.ID.String(), Status: attendance.StatusPresent, Shift: guard.ShiftDay,
		})
		require.NoError(t, err)

		id := f.repo.upserts[0].ID.String()
		require.NoError(t, f.service.Delete(ctx, supervisor(), id, "marked by mistake"))

		require.Len(t, f.repo.deleted, 1)
		var deletedID string
		for k, d := range f.repo.deleted {
			deletedID = k
			assert.Equal(t, "svetlana", d.DeletedBy)
			assert.Equal(t, "marked by mistake", d.DeletionReason)
		}

		require.NoError(t, f.service.Restore(ctx, supervisor(), deletedID))
		assert.Equal(t, 1, f.repo.restores)
		assert.Empty(t, f.repo.deleted)
	})

	t.Run("delete unknown id", func(t *testing.T) {
		f := newFixture(t)
		err := f.service.Delete(ctx, supervisor(), uuid.NewString(), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})

	t.Run("restore refuses to clobber a newer record", func(t *testing.T) {
		f := newFixture(t)
		f.repo.conflict = true

		d := &attendance.DeletedAttendance{ID: uuid.New(), GuardID: f.guard.ID}
		f.repo.deleted[d.ID.String()] = d

		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		err := f.service.Restore(ctx, supervisor(), d.ID.String())
		assert.ErrorIs(t, err, attendanceerrors.ErrRestoreConflict)
		assert.Len(t, f.repo.deleted, 1, "snapshot stays for a later retry")
	})
}
