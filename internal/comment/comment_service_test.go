package comment_test

import (
	"context"
	"testing"
	"time"

	"guardshift/internal/authz"
	"guardshift/internal/comment"
	commenterrors "guardshift/internal/comment/errors"
	"guardshift/internal/guard"
	guarderrors "guardshift/internal/guard/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCommentRepo struct {
	rows map[string]*comment.GuardComment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{rows: map[string]*comment.GuardComment{}}
}

func (f *fakeCommentRepo) Create(_ context.Context, c *comment.GuardComment) error {
	c.CreatedAt = time.Now().UTC()
	f.rows[c.ID.String()] = c
	return nil
}

func (f *fakeCommentRepo) FindActiveByGuard(_ context.Context, guardID string) ([]comment.GuardComment, error) {
	var out []comment.GuardComment
	for _, c := range f.rows {
		if c.GuardID.String() == guardID && c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id string) (*comment.GuardComment, error) {
	c, ok := f.rows[id]
	if !ok {
		return &comment.GuardComment{}, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCommentRepo) Deactivate(_ context.Context, id string) error {
	c, ok := f.rows[id]
	if !ok || !c.IsActive {
		return gorm.ErrRecordNotFound
	}
	c.IsActive = false
	return nil
}

func (f *fakeCommentRepo) LatestActiveForGuardOnDate(_ context.Context, _ string, _ time.Time) (*comment.GuardComment, error) {
	return nil, gorm.ErrRecordNotFound
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

func setup() (comment.Service, *fakeCommentRepo, *guard.Guard) {
	repo := newFakeCommentRepo()
	g := &guard.Guard{ID: uuid.New(), Name: "Ahmed Hassan", IsActive: true}
	guards := &fakeGuardRepo{guards: map[string]*guard.Guard{g.ID.String(): g}}
	return comment.NewService(repo, guards), repo, g
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	service, repo, g := setup()

	t.Run("defaults type to note", func(t *testing.T) {
		resp, err := service.Add(ctx, authz.Principal{Username: "svetlana"}, g.ID.String(), comment.AddCommentRequest{
			Comment: "radio handed over",
		})

		require.NoError(t, err)
		assert.Equal(t, "note", resp.Type)
		assert.Equal(t, "svetlana", resp.CreatedBy)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("unknown guard", func(t *testing.T) {
		_, err := service.Add(ctx, authz.Principal{Username: "svetlana"}, uuid.NewString(), comment.AddCommentRequest{
			Comment: "x",
		})
		assert.ErrorIs(t, err, guarderrors.ErrGuardNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	service, repo, g := setup()

	created, err := service.Add(ctx, authz.Principal{Username: "svetlana"}, g.ID.String(), comment.AddCommentRequest{
		Comment: "radio handed over",
	})
	require.NoError(t, err)

	t.Run("non-creator refused regardless of role", func(t *testing.T) {
		err := service.Delete(ctx, authz.Principal{Username: "boss", Role: authz.RoleGeneralManager}, created.ID)
		assert.ErrorIs(t, err, commenterrors.ErrNotCommentCreator)
		assert.True(t, repo.rows[created.ID].IsActive)
	})

	t.Run("creator soft-deletes", func(t *testing.T) {
		err := service.Delete(ctx, authz.Principal{Username: "svetlana"}, created.ID)
		require.NoError(t, err)
		assert.False(t, repo.rows[created.ID].IsActive)
	})

	t.Run("unknown comment", func(t *testing.T) {
		err := service.Delete(ctx, authz.Principal{Username: "svetlana"}, uuid.NewString())
		assert.ErrorIs(t, err, commenterrors.ErrCommentNotFound)
	})
}
