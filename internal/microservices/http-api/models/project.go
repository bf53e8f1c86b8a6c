package models

import "time"

// APIKeyPrefix marks keys issued to project widgets.
const APIKeyPrefix = "fbme_"

type Project struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description"`
	Domain      string    `gorm:"not null" json:"domain"`
	APIKey      string    `gorm:"column:api_key;uniqueIndex;not null" json:"apiKey"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"userId"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Associations
	Owner *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

// IsOwnedBy reports whether userID owns the project.
func (p *Project) IsOwnedBy(userID string) bool {
	return userID != "" && p.UserID == userID
}

func (Project) TableName() string {
	return "projects"
}

// ProjectStats is the dashboard aggregate of one project's feedback.
type ProjectStats struct {
	TotalFeedback   int64 `json:"totalFeedback"`
	TotalVotes      int64 `json:"totalVotes"`
	FeatureRequests int64 `json:"featureRequests"`
	BugReports      int64 `json:"bugReports"`
	Improvements    int64 `json:"improvements"`
	OpenItems       int64 `json:"openItems"`
	InProgressItems int64 `json:"inProgressItems"`
	ClosedItems     int64 `json:"closedItems"`
}
