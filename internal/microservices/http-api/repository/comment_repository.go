package repository

import (
	"context"

	"feedbackme/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	GetWithProjectOwner(ctx context.Context, commentID int64) (*models.CommentWithOwner, error)
	GetActiveOnItem(ctx context.Context, commentID, feedbackItemID int64) (*models.Comment, error)
	ListByItem(ctx context.Context, feedbackItemID int64, parentID *int64, limit int) ([]models.Comment, error)
	CountReplies(ctx context.Context, parentIDs []int64) (map[int64]int64, error)
	UpdateActive(ctx context.Context, commentID int64, updates map[string]any) (*models.Comment, error)
	SoftDelete(ctx context.Context, commentID int64) (*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID retrieves a comment with its author
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetWithProjectOwner loads a comment together with the owner of the project it lives under.
func (r *commentRepository) GetWithProjectOwner(ctx context.Context, commentID int64) (*models.CommentWithOwner, error) {
	var row models.CommentWithOwner
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.*, feedback_items.project_id AS project_id, projects.user_id AS project_owner_id").
		Joins("JOIN feedback_items ON feedback_items.id = comments.feedback_item_id").
		Joins("JOIN projects ON projects.id = feedback_items.project_id").
		Where("comments.id = ?", commentID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetActiveOnItem returns the comment only if it belongs to the item and is not soft-deleted.
func (r *commentRepository) GetActiveOnItem(ctx context.Context, commentID, feedbackItemID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND feedback_item_id = ? AND is_deleted = false", commentID, feedbackItemID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByItem returns non-deleted comments newest first: top-level ones when parentID is nil,
// otherwise the replies of that parent.
func (r *commentRepository) ListByItem(ctx context.Context, feedbackItemID int64, parentID *int64, limit int) ([]models.Comment, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("feedback_item_id = ? AND is_deleted = false", feedbackItemID)

	if parentID != nil {
		query = query.Where("parent_comment_id = ?", *parentID)
	} else {
		query = query.Where("parent_comment_id IS NULL")
	}

	comments := []models.Comment{}
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&comments).Error
	return comments, err
}

// CountReplies counts non-deleted replies for every parent in one grouped query.
// Parents without replies are absent from the map.
func (r *commentRepository) CountReplies(ctx context.Context, parentIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ParentCommentID int64
		Replies         int64
	}
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("parent_comment_id, COUNT(*) AS replies").
		Where("parent_comment_id IN ? AND is_deleted = false", parentIDs).
		Group("parent_comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ParentCommentID] = row.Replies
	}
	return counts, nil
}

// UpdateActive updates a comment that is not soft-deleted.
// gorm.ErrRecordNotFound means the comment is missing or was deleted meanwhile.
func (r *commentRepository) UpdateActive(ctx context.Context, commentID int64, updates map[string]any) (*models.Comment, error) {
	result := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND is_deleted = false", commentID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, commentID)
}

// SoftDelete flags the comment deleted and replaces its content with the placeholder.
func (r *commentRepository) SoftDelete(ctx context.Context, commentID int64) (*models.Comment, error) {
	return r.UpdateActive(ctx, commentID, map[string]any{
		"is_deleted": true,
		"content":    models.DeletedCommentContent,
	})
}
