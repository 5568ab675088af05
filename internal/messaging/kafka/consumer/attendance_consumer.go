package consumer

import (
	"context"
	"encoding/json"

	"guardshift/internal/events"
	"guardshift/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAttendanceSubmitted fans attendance.submitted events out to office
// staff notifications. Messages are committed only after a successful
// fan-out; undecodable payloads are committed and dropped.
func ConsumeAttendanceSubmitted(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_submitted")
	log.Info("attendance submitted consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance submitted consumer stopped")
				return
			}
			log.Error("fetch attendance message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance.submitted event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifications.HandleAttendanceSubmitted(ctx, event); err != nil {
			log.Error("fan out attendance.submitted failed",
				zap.String("marked_by", event.MarkedBy),
				zap.String("date", event.Date),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance message failed", zap.Error(err))
			continue
		}

		log.Info("attendance.submitted fanned out",
			zap.String("marked_by", event.MarkedBy),
			zap.String("shift", event.Shift),
			zap.Int("guard_count", event.GuardCount),
		)
	}
}
