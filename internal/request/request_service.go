package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"guardshift/internal/authz"
	"guardshift/internal/events"
	"guardshift/internal/messaging/kafka"
	requesterrors "guardshift/internal/request/errors"
	"guardshift/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, p authz.Principal, req SubmitRequest) (RequestResponse, error)
	List(ctx context.Context, p authz.Principal) ([]RequestResponse, error)
	UpdateStatus(ctx context.Context, p authz.Principal, id string, req UpdateStatusRequest) (RequestResponse, error)
	Edit(ctx context.Context, p authz.Principal, id string, req EditRequest) (RequestResponse, error)
	Delete(ctx context.Context, p authz.Principal, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, outbox: outbox}
}

// Submit files a new request on behalf of the caller. Any authenticated user
// may submit; the role is stamped from the session so reviewers see who asked.
func (s *service) Submit(ctx context.Context, p authz.Principal, req SubmitRequest) (RequestResponse, error) {
	row := &StaffRequest{
		ID:          uuid.New(),
		FromUser:    p.Username,
		Role:        p.Role,
		Type:        req.Type,
		Description: req.Description,
		Status:      StatusPending,
		SubmittedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
		return RequestResponse{}, err
	}

	payload, err := json.Marshal(events.RequestSubmittedEvent{
		EventType:   "request.submitted",
		RequestID:   row.ID.String(),
		RequestType: row.Type,
		FromUser:    row.FromUser,
		Description: row.Description,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return RequestResponse{}, err
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "request",
		AggregateID:   row.ID.String(),
		EventType:     "request.submitted",
		Topic:         events.RequestSubmittedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RequestResponse{}, err
	}

	contextutil.GetLogger(ctx, zap.L()).Info("request submitted",
		zap.String("request_id", row.ID.String()),
		zap.String("type", row.Type),
		zap.String("from_user", row.FromUser),
	)
	return toResponse(row), nil
}

// List returns requests visible to the caller. Supervisors see only their
// own submissions; office roles see everything.
func (s *service) List(ctx context.Context, p authz.Principal) ([]RequestResponse, error) {
	var (
		rows []StaffRequest
		err  error
	)
	if p.Role == authz.RoleSupervisor {
		rows, err = s.repo.FindByUser(ctx, p.Username)
	} else {
		rows, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]RequestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out, nil
}

// UpdateStatus moves a request through its review lifecycle. Role gating
// happens at the route; here we only record who decided and when.
func (s *service) UpdateStatus(ctx context.Context, p authz.Principal, id string, req UpdateStatusRequest) (RequestResponse, error) {
	row, err := s.findOne(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}

	row.Status = req.Status
	row.UpdatedBy = &p.Username
	if req.Status != StatusPending {
		now := time.Now().UTC()
		row.RespondedAt = &now
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return RequestResponse{}, err
	}
	return toResponse(row), nil
}

// Edit amends a request's type or description. Blank fields are left alone.
func (s *service) Edit(ctx context.Context, p authz.Principal, id string, req EditRequest) (RequestResponse, error) {
	row, err := s.findOne(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}

	if req.Type != "" {
		row.Type = req.Type
	}
	if req.Description != "" {
		row.Description = req.Description
	}
	row.UpdatedBy = &p.Username
	now := time.Now().UTC()
	row.RespondedAt = &now

	if err := s.repo.Update(ctx, row); err != nil {
		return RequestResponse{}, err
	}
	return toResponse(row), nil
}

// Delete removes a request. Only its creator may delete it, regardless of
// role.
func (s *service) Delete(ctx context.Context, p authz.Principal, id string) error {
	row, err := s.findOne(ctx, id)
	if err != nil {
		return err
	}
	if row.FromUser != p.Username {
		return requesterrors.ErrNotRequestCreator
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return requesterrors.ErrRequestNotFound
		}
		return err
	}
	return nil
}

func (s *service) findOne(ctx context.Context, id string) (*StaffRequest, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requesterrors.ErrRequestNotFound
		}
		return nil, err
	}
	return row, nil
}

func toResponse(row *StaffRequest) RequestResponse {
	resp := RequestResponse{
		ID:          row.ID.String(),
		FromUser:    row.FromUser,
		Role:        row.Role,
		Type:        row.Type,
		Description: row.Description,
		Status:      row.Status,
		SubmittedAt: row.SubmittedAt.Format(time.RFC3339),
	}
	if row.RespondedAt != nil {
		resp.RespondedAt = row.RespondedAt.Format(time.RFC3339)
	}
	if row.UpdatedBy != nil {
		resp.UpdatedBy = *row.UpdatedBy
	}
	return resp
}
