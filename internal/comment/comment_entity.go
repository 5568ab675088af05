package comment

import (
	"time"

	"github.com/google/uuid"
)

// GuardComment is a free-text note attached to a guard. Comments are
// soft-deleted (is_active flips) and only their creator may delete them.
type GuardComment struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	GuardID     uuid.UUID `gorm:"column:guard_id;type:uuid;not null;index"`
	Comment     string    `gorm:"column:comment;type:text;not null"`
	CommentType string    `gorm:"column:comment_type;type:varchar(50);default:note"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(50);not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	Guard       *GuardRef `gorm:"foreignKey:GuardID;references:ID"`
}

func (GuardComment) TableName() string {
	return "guard_comments"
}

type GuardRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (GuardRef) TableName() string {
	return "guards"
}
