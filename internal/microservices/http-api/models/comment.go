package models

import "time"

// DeletedCommentContent replaces the content of soft-deleted comments.
const DeletedCommentContent = "[deleted]"

type Comment struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Content         string    `json:"content" gorm:"not null;type:text"`
	FeedbackItemID  int64     `json:"feedbackItemId" gorm:"not null;index"`
	UserID          *string   `json:"userId" gorm:"type:uuid;index"`
	UserEmail       *string   `json:"userEmail"`
	UserName        *string   `json:"userName"`
	ParentCommentID *int64    `json:"parentCommentId" gorm:"index"`
	IsModerated     bool      `json:"isModerated" gorm:"not null;default:false"`
	IsDeleted       bool      `json:"isDeleted" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	// Associations
	User         *User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL;"`
	FeedbackItem *FeedbackItem `json:"-" gorm:"foreignKey:FeedbackItemID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsAuthoredBy reports whether userID wrote the comment. Guest comments have no author.
func (c *Comment) IsAuthoredBy(userID string) bool {
	return c.UserID != nil && userID != "" && *c.UserID == userID
}

// CommentWithOwner is a comment joined with the owner of the project its feedback item belongs to.
type CommentWithOwner struct {
	Comment
	ProjectID      int64
	ProjectOwnerID string
}
