package models

import "time"

const (
	FeedbackTypeFeature     = "feature"
	FeedbackTypeBug         = "bug"
	FeedbackTypeImprovement = "improvement"
)

const (
	FeedbackStatusOpen       = "open"
	FeedbackStatusInProgress = "in-progress"
	FeedbackStatusClosed     = "closed"
)

type FeedbackItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null;type:text" json:"description"`
	Type        string    `gorm:"not null" json:"type"`
	Status      string    `gorm:"not null;default:open" json:"status"`
	Upvotes     int       `gorm:"not null;default:0;check:upvotes >= 0" json:"upvotes"`
	Downvotes   int       `gorm:"not null;default:0;check:downvotes >= 0" json:"downvotes"`
	ProjectID   int64     `gorm:"not null;index" json:"projectId"`
	UserID      *string   `gorm:"type:uuid;index" json:"userId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Associations
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (FeedbackItem) TableName() string {
	return "feedback_items"
}

func IsValidFeedbackType(t string) bool {
	switch t {
	case FeedbackTypeFeature, FeedbackTypeBug, FeedbackTypeImprovement:
		return true
	}
	return false
}

func IsValidFeedbackStatus(s string) bool {
	switch s {
	case FeedbackStatusOpen, FeedbackStatusInProgress, FeedbackStatusClosed:
		return true
	}
	return false
}
