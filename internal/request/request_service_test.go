package request_test

import (
	"context"
	"database/sql"
	"testing"

	"guardshift/internal/authz"
	"guardshift/internal/messaging/kafka"
	"guardshift/internal/request"
	requesterrors "guardshift/internal/request/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRequestRepo struct {
	rows map[string]*request.StaffRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{rows: map[string]*request.StaffRequest{}}
}

func (f *fakeRequestRepo) WithTx(_ *sql.Tx) request.Repository { return f }

func (f *fakeRequestRepo) Create(_ context.Context, req *request.StaffRequest) error {
	cp := *req
	f.rows[req.ID.String()] = &cp
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id string) (*request.StaffRequest, error) {
	row, ok := f.rows[id]
	if !ok {
		return &request.StaffRequest{}, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeRequestRepo) FindAll(_ context.Context) ([]request.StaffRequest, error) {
	var out []request.StaffRequest
	for _, row := range f.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (f *fakeRequestRepo) FindByUser(_ context.Context, username string) ([]request.StaffRequest, error) {
	var out []request.StaffRequest
	for _, row := range f.rows {
		if row.FromUser == username {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, req *request.StaffRequest) error {
	f.rows[req.ID.String()] = req
	return nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
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

type fixture struct {
	service request.Service
	repo    *fakeRequestRepo
	outbox  *fakeOutbox
	mock    sqlmock.Sqlmock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		repo:   newFakeRequestRepo(),
		outbox: &fakeOutbox{},
		mock:   mock,
	}
	f.service = request.NewService(db, f.repo, f.outbox)
	return f
}

func supervisor() authz.Principal {
	return authz.Principal{Username: "svetlana", Role: authz.RoleSupervisor}
}

func opsManager() authz.Principal {
	return authz.Principal{Username: "omar", Role: authz.RoleOpsManager}
}

func submit(t *testing.T, f *fixture, p authz.Principal, reqType string) request.RequestResponse {
	t.Helper()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.service.Submit(context.Background(), p, request.SubmitRequest{
		Type:        reqType,
		Description: "details for " + reqType,
	})
	require.NoError(t, err)
	return resp
}

func TestService_Submit(t *testing.T) {
	f := newFixture(t)

	resp := submit(t, f, supervisor(), "Leave")

	assert.Equal(t, "svetlana", resp.FromUser)
	assert.Equal(t, authz.RoleSupervisor, resp.Role)
	assert.Equal(t, request.StatusPending, resp.Status)
	assert.Empty(t, resp.RespondedAt)

	require.Len(t, f.outbox.created, 1)
	assert.Equal(t, "request.submitted", f.outbox.created[0].EventType)
	assert.Equal(t, resp.ID, f.outbox.created[0].AggregateID)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	submit(t, f, supervisor(), "Leave")
	submit(t, f, opsManager(), "Equipment")

	t.Run("supervisor sees only their own", func(t *testing.T) {
		rows, err := f.service.List(ctx, supervisor())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "svetlana", rows[0].FromUser)
	})

	t.Run("office roles see everything", func(t *testing.T) {
		rows, err := f.service.List(ctx, opsManager())
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approval stamps reviewer and response time", func(t *testing.T) {
		f := newFixture(t)
		created := submit(t, f, supervisor(), "Leave")

		resp, err := f.service.UpdateStatus(ctx, opsManager(), created.ID, request.UpdateStatusRequest{
			Status: request.StatusApproved,
		})
		require.NoError(t, err)

		assert.Equal(t, request.StatusApproved, resp.Status)
		assert.Equal(t, "omar", resp.UpdatedBy)
		assert.NotEmpty(t, resp.RespondedAt)
	})

	t.Run("moving back to pending leaves responded_at unset", func(t *testing.T) {
		f := newFixture(t)
		created := submit(t, f, supervisor(), "Leave")

		resp, err := f.service.UpdateStatus(ctx, opsManager(), created.ID, request.UpdateStatusRequest{
			Status: request.StatusPending,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.RespondedAt)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.UpdateStatus(ctx, opsManager(), uuid.NewString(), request.UpdateStatusRequest{
			Status: request.StatusApproved,
		})
		assert.ErrorIs(t, err, requesterrors.ErrRequestNotFound)
	})
}

func TestService_Edit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := submit(t, f, supervisor(), "Leave")

	resp, err := f.service.Edit(ctx, supervisor(), created.ID, request.EditRequest{
		Description: "updated details",
	})
	require.NoError(t, err)

	assert.Equal(t, "Leave", resp.Type, "blank fields stay untouched")
	assert.Equal(t, "updated details", resp.Description)
	assert.Equal(t, "svetlana", resp.UpdatedBy)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("creator deletes their own", func(t *testing.T) {
		f := newFixture(t)
		created := submit(t, f, supervisor(), "Leave")

		require.NoError(t, f.service.Delete(ctx, supervisor(), created.ID))
		assert.Empty(t, f.repo.rows)
	})

	t.Run("other users refused even with office role", func(t *testing.T) {
		f := newFixture(t)
		created := submit(t, f, supervisor(), "Leave")

		err := f.service.Delete(ctx, opsManager(), created.ID)
		assert.ErrorIs(t, err, requesterrors.ErrNotRequestCreator)
		assert.Len(t, f.repo.rows, 1)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newFixture(t)
		err := f.service.Delete(ctx, supervisor(), uuid.NewString())
		assert.ErrorIs(t, err, requesterrors.ErrRequestNotFound)
	})
}
