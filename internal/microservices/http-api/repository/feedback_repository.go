package repository

import (
	"context"
	"strings"

	"feedbackme/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// FeedbackFilter selects and orders feedback items of one project.
type FeedbackFilter struct {
	ProjectID int64
	Type      string
	Status    string
	Sort      string // newest, oldest, votes, upvotes
	Search    string
	Limit     int
}

type FeedbackRepository interface {
	Create(ctx context.Context, item *models.FeedbackItem) error
	FindByID(ctx context.Context, id int64) (*models.FeedbackItem, error)
	List(ctx context.Context, filter FeedbackFilter) ([]models.FeedbackItem, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.FeedbackItem, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, item *models.FeedbackItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *feedbackRepository) FindByID(ctx context.Context, id int64) (*models.FeedbackItem, error) {
	var item models.FeedbackItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *feedbackRepository) List(ctx context.Context, filter FeedbackFilter) ([]models.FeedbackItem, error) {
	query := r.db.WithContext(ctx).Where("project_id = ?", filter.ProjectID)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	items := []models.FeedbackItem{}
	err := query.Order(feedbackOrder(filter.Sort)).Limit(filter.Limit).Find(&items).Error
	return items, err
}

func feedbackOrder(sort string) string {
	switch sort {
	case "oldest":
		return "created_at ASC, id ASC"
	case "votes":
		return "(upvotes + downvotes) DESC, created_at DESC, id DESC"
	case "upvotes":
		return "upvotes DESC, created_at DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *feedbackRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.FeedbackItem, error) {
	result := r.db.WithContext(ctx).Model(&models.FeedbackItem{ID: id}).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}
