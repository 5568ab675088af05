package override_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"guardshift/internal/authz"
	"guardshift/internal/guard"
	guarderrors "guardshift/internal/guard/errors"
	"guardshift/internal/messaging/kafka"
	"guardshift/internal/override"
	overrideerrors "guardshift/internal/override/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOverrideRepo struct {
	upserts []override.ShiftOverride
	active  map[string]*override.ShiftOverride // key guard|date
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{active: map[string]*override.ShiftOverride{}}
}

func activeKey(guardID string, date time.Time) string {
	return guardID + "|" + date.Format("2006-01-02")
}

func (f *fakeOverrideRepo) WithTx(_ *sql.Tx) override.Repository { return f }

func (f *fakeOverrideRepo) Upsert(_ context.Context, o *override.ShiftOverride) error {
	f.upserts = append(f.upserts, *o)
	k := activeKey(o.GuardID.String(), o.Date)
	if existing, ok := f.active[k]; ok {
		// update path: target fields change, snapshot stays
		existing.OverrideShift = o.OverrideShift
		existing.OverrideLocationID = o.OverrideLocationID
		existing.Reason = o.Reason
		existing.CreatedBy = o.CreatedBy
		return nil
	}
	cp := *o
	f.active[k] = &cp
	return nil
}

func (f *fakeOverrideRepo) FindActiveByGuardAndDate(_ context.Context, guardID string, date time.Time) (*override.ShiftOverride, error) {
	o, ok := f.active[activeKey(guardID, date)]
	if !ok {
		return &override.ShiftOverride{}, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOverrideRepo) FindActiveInbound(_ context.Context, _, _ string, _ time.Time) ([]override.ShiftOverride, error) {
	return nil, nil
}

func (f *fakeOverrideRepo) Deactivate(_ context.Context, guardID string, date time.Time) error {
	k := activeKey(guardID, date)
	if _, ok := f.active[k]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.active, k)
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
func (f *fakeGuardRepo) FindActiveByLocationAndShift(_ context.Context, _, _ string) ([]guard.Guard, error) {
	return nil, nil
}
func (f *fakeGuardRepo) FindAllByLocation(_ context.Context, _ string) ([]guard.Guard, error) {
	return nil, nil
}
func (f *fakeGuardRepo) Update(_ context.Context, _ *guard.Guard) error { return nil }

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

type fixture struct {
	service override.Service
	repo    *fakeOverrideRepo
	outbox  *fakeOutbox
	mock    sqlmock.Sqlmock
	guard   *guard.Guard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	locID := uuid.New()
	g := &guard.Guard{
		ID:         uuid.New(),
		Name:       "Ahmed Hassan",
		LocationID: locID,
		ShiftType:  guard.ShiftDay,
		IsActive:   true,
		Location: &guard.LocationRef{
			ID:           locID,
			Name:         "Harbor Gate",
			IsAccessible: true,
			Company:      &guard.CompanyRef{Name: "Falcon Security"},
		},
	}

	f := &fixture{
		repo:   newFakeOverrideRepo(),
		outbox: &fakeOutbox{},
		mock:   mock,
		guard:  g,
	}
	f.service = override.NewService(
		db, f.repo, &fakeGuardRepo{guards: map[string]*guard.Guard{g.ID.String(): g}}, f.outbox,
	)
	return f
}

func supervisor() authz.Principal {
	return authz.Principal{Username: "svetlana", Role: authz.RoleSupervisor}
}

func TestService_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("shift-only override defaults to home location", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.service.CreateOrUpdate(ctx, supervisor(), override.CreateOverrideRequest{
			GuardID:       f.guard.ID.String(),
			OverrideShift: guard.ShiftNight,
			Reason:        "night cover",
		})

		require.NoError(t, err)
		assert.Equal(t, guard.ShiftDay, resp.OriginalShift)
		assert.Equal(t, guard.ShiftNight, resp.OverrideShift)
		assert.Equal(t, f.guard.LocationID.String(), resp.OverrideLocationID)
		assert.True(t, resp.IsShiftChanged)
		assert.False(t, resp.IsLocationChanged)
		assert.Equal(t, "svetlana", resp.CreatedBy)

		require.Len(t, f.outbox.created, 1)
		assert.Equal(t, "shift_override.created", f.outbox.created[0].EventType)
	})

	t.Run("second override replaces target but keeps the snapshot", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		otherLoc := uuid.New()

		_, err := f.service.CreateOrUpdate(ctx, supervisor(), override.CreateOverrideRequest{
			GuardID:       f.guard.ID.String(),
			OverrideShift: guard.ShiftNight,
			Reason:        "night cover",
		})
		require.NoError(t, err)

		resp, err := f.service.CreateOrUpdate(ctx, supervisor(), override.CreateOverrideRequest{
			GuardID:            f.guard.ID.String(),
			OverrideShift:      guard.ShiftDay,
			OverrideLocationID: otherLoc.String(),
			Reason:             "moved again",
		})
		require.NoError(t, err)

		assert.Equal(t, guard.ShiftDay, resp.OriginalShift, "snapshot survives the second upsert")
		assert.Equal(t, otherLoc.String(), resp.OverrideLocationID)
		assert.Equal(t, "moved again", resp.Reason)
	})

	t.Run("unknown guard", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.CreateOrUpdate(ctx, supervisor(), override.CreateOverrideRequest{
			GuardID:       uuid.NewString(),
			OverrideShift: guard.ShiftNight,
			Reason:        "x",
		})
		assert.ErrorIs(t, err, guarderrors.ErrGuardNotFound)
	})

	t.Run("bad date", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.CreateOrUpdate(ctx, supervisor(), override.CreateOverrideRequest{
			GuardID:       f.guard.ID.String(),
			OverrideShift: guard.ShiftNight,
			Reason:        "x",
			Date:          "31-12-2026",
		})
		assert.ErrorIs(t, err, overrideerrors.ErrInvalidDate)
	})

	t.Run("malformed override location id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.CreateOrUpdate(ctx, supervisor(), override.CreateOverrideRequest{
			GuardID:            f.guard.ID.String(),
			OverrideShift:      guard.ShiftNight,
			OverrideLocationID: "not-a-uuid",
			Reason:             "x",
		})
		assert.ErrorIs(t, err, overrideerrors.ErrInvalidLocation)
	})
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	t.Run("removes the active override", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		_, err := f.service.CreateOrUpdate(ctx, supervisor(), override.CreateOverrideRequest{
			GuardID:       f.guard.ID.String(),
			OverrideShift: guard.ShiftNight,
			Reason:        "night cover",
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Remove(ctx, supervisor(), f.guard.ID.String(), today))
		assert.Empty(t, f.repo.active)
	})

	t.Run("no active override", func(t *testing.T) {
		f := newFixture(t)
		err := f.service.Remove(ctx, supervisor(), f.guard.ID.String(), today)
		assert.ErrorIs(t, err, overrideerrors.ErrOverrideNotFound)
	})
}

func TestService_ShiftInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("no override", func(t *testing.T) {
		f := newFixture(t)

		info, err := f.service.ShiftInfo(ctx, f.guard.ID.String())
		require.NoError(t, err)

		assert.False(t, info.HasOverride)
		assert.Equal(t, guard.ShiftDay, info.DefaultShift)
		assert.Equal(t, guard.ShiftDay, info.CurrentShift)
		assert.Equal(t, "Harbor Gate", info.CurrentLocation)
		assert.Equal(t, "Falcon Security", info.CurrentCompany)
	})

	t.Run("with override", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		_, err := f.service.CreateOrUpdate(ctx, supervisor(), override.CreateOverrideRequest{
			GuardID:       f.guard.ID.String(),
			OverrideShift: guard.ShiftNight,
			Reason:        "night cover",
		})
		require.NoError(t, err)

		info, err := f.service.ShiftInfo(ctx, f.guard.ID.String())
		require.NoError(t, err)

		assert.True(t, info.HasOverride)
		assert.Equal(t, guard.ShiftNight, info.CurrentShift)
		assert.Equal(t, "night cover", info.OverrideReason)
		assert.True(t, info.IsShiftChanged)
	})
}
