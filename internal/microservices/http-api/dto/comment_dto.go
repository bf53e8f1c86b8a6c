package dto

import (
	"time"

	"feedbackme/internal/microservices/http-api/models"
)

// CreateCommentRequest for creating a comment; userName/userEmail only matter for guests
type CreateCommentRequest struct {
	Content         string  `json:"content" binding:"required,min=5,max=500"`
	FeedbackItemID  int64   `json:"feedbackItemId" binding:"required,gt=0"`
	ParentCommentID *int64  `json:"parentCommentId" binding:"omitempty,gt=0"`
	UserName        *string `json:"userName" binding:"omitempty,max=100"`
	UserEmail       *string `json:"userEmail" binding:"omitempty,email"`
}

// UpdateCommentRequest: content is for the author, isModerated for the project owner
type UpdateCommentRequest struct {
	Content     *string `json:"content" binding:"omitempty,min=5,max=500"`
	IsModerated *bool   `json:"isModerated"`
}

type CommentQuery struct {
	FeedbackItemID  int64  `form:"feedbackItemId" binding:"required,gt=0"`
	ParentCommentID *int64 `form:"parentCommentId" binding:"omitempty,gt=0"`
	Limit           int    `form:"limit" binding:"omitempty,gte=0"`
}

type CommentUser struct {
	ID              *string `json:"id"`
	Name            string  `json:"name"`
	Email           *string `json:"email"`
	Image           *string `json:"image"`
	IsAuthenticated bool    `json:"isAuthenticated"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID              int64       `json:"id"`
	Content         string      `json:"content"`
	FeedbackItemID  int64       `json:"feedbackItemId"`
	ParentCommentID *int64      `json:"parentCommentId"`
	IsModerated     bool        `json:"isModerated"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	User            CommentUser `json:"user"`
	ReplyCount      *int64      `json:"replyCount,omitempty"` // top-level comments only
}

// FromModelToCommentResponse converts a Comment model (with its User preloaded when present)
func FromModelToCommentResponse(comment *models.Comment) CommentResponse {
	user := CommentUser{
		ID:              comment.UserID,
		Name:            "Anonymous",
		Email:           comment.UserEmail,
		IsAuthenticated: comment.UserID != nil,
	}
	if comment.UserName != nil && *comment.UserName != "" {
		user.Name = *comment.UserName
	}
	if comment.User != nil {
		if comment.User.Name != nil && *comment.User.Name != "" {
			user.Name = *comment.User.Name
		}
		user.Image = comment.User.Image
	}

	return CommentResponse{
		ID:              comment.ID,
		Content:         comment.Content,
		FeedbackItemID:  comment.FeedbackItemID,
		ParentCommentID: comment.ParentCommentID,
		IsModerated:     comment.IsModerated,
		CreatedAt:       comment.CreatedAt,
		UpdatedAt:       comment.UpdatedAt,
		User:            user,
	}
}

type CommentListResponse struct {
	Comments        []CommentResponse `json:"comments"`
	Total           int               `json:"total"`
	FeedbackItemID  int64             `json:"feedbackItemId"`
	ParentCommentID *int64            `json:"parentCommentId"`
}

type UpdatedComment struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	IsModerated bool      `json:"isModerated"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UpdateCommentResponse struct {
	Comment         UpdatedComment `json:"comment"`
	PreviousContent *string        `json:"previousContent,omitempty"`
}

type DeletedComment struct {
	ID        int64     `json:"id"`
	IsDeleted bool      `json:"isDeleted"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DeleteCommentResponse struct {
	Comment   DeletedComment `json:"comment"`
	DeletedBy string         `json:"deletedBy"` // project_owner | comment_owner
}
