package models

import "time"

const (
	NotificationNewFeedback = "NEW_FEEDBACK"
	NotificationNewComment  = "NEW_COMMENT"
)

type Notification struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:uuid;not null;index" json:"userId"`
	Type           string    `gorm:"not null" json:"type"` // NEW_FEEDBACK, NEW_COMMENT
	ProjectID      *int64    `json:"projectId"`
	FeedbackItemID *int64    `json:"feedbackItemId"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Read           bool      `gorm:"default:false" json:"read"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
