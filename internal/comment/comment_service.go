package comment

import (
	"context"
	"errors"

	"guardshift/internal/authz"
	commenterrors "guardshift/internal/comment/errors"
	"guardshift/internal/guard"
	guarderrors "guardshift/internal/guard/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Add(ctx context.Context, p authz.Principal, guardID string, req AddCommentRequest) (CommentResponse, error)
	ListByGuard(ctx context.Context, guardID string) ([]CommentResponse, error)
	Delete(ctx context.Context, p authz.Principal, commentID string) error
}

type service struct {
	repo   Repository
	guards guard.Repository
}

func NewService(repo Repository, guards guard.Repository) Service {
	return &service{repo: repo, guards: guards}
}

func (s *service) Add(ctx context.Context, p authz.Principal, guardID string, req AddCommentRequest) (CommentResponse, error) {
	g, err := s.guards.FindByID(ctx, guardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CommentResponse{}, guarderrors.ErrGuardNotFound
		}
		return CommentResponse{}, err
	}

	commentType := req.Type
	if commentType == "" {
		commentType = "note"
	}

	row := &GuardComment{
		ID:          uuid.New(),
		GuardID:     g.ID,
		Comment:     req.Comment,
		CommentType: commentType,
		CreatedBy:   p.Username,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return CommentResponse{}, err
	}

	return CommentResponse{
		ID:        row.ID.String(),
		GuardID:   row.GuardID.String(),
		GuardName: g.Name,
		Comment:   row.Comment,
		Type:      row.CommentType,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt.Format("2006-01-02 15:04"),
	}, nil
}

func (s *service) ListByGuard(ctx context.Context, guardID string) ([]CommentResponse, error) {
	rows, err := s.repo.FindActiveByGuard(ctx, guardID)
	if err != nil {
		return nil, err
	}

	out := make([]CommentResponse, 0, len(rows))
	for _, row := range rows {
		resp := CommentResponse{
			ID:        row.ID.String(),
			GuardID:   row.GuardID.String(),
			Comment:   row.Comment,
			Type:      row.CommentType,
			CreatedBy: row.CreatedBy,
			CreatedAt: row.CreatedAt.Format("2006-01-02 15:04"),
		}
		if row.Guard != nil {
			resp.GuardName = row.Guard.Name
		}
		out = append(out, resp)
	}
	return out, nil
}

// Delete soft-removes a comment. Only the creator may delete their own note,
// regardless of role.
func (s *service) Delete(ctx context.Context, p authz.Principal, commentID string) error {
	row, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return commenterrors.ErrCommentNotFound
		}
		return err
	}

	if row.CreatedBy != p.Username {
		return commenterrors.ErrNotCommentCreator
	}

	if err := s.repo.Deactivate(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return commenterrors.ErrCommentNotFound
		}
		return err
	}
	return nil
}
