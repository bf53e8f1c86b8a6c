package repository

import (
	"context"

	"feedbackme/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WaitlistRepository interface {
	// Register inserts the registration unless the email is already present.
	// It returns the stored row and whether this call created it.
	Register(ctx context.Context, reg *models.WaitlistRegistration) (*models.WaitlistRegistration, bool, error)
	FindByEmail(ctx context.Context, email string) (*models.WaitlistRegistration, error)
	Position(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (r *waitlistRepository) Register(ctx context.Context, reg *models.WaitlistRegistration) (*models.WaitlistRegistration, bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(reg)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return reg, true, nil
	}

	existing, err := r.FindByEmail(ctx, reg.Email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *waitlistRepository) FindByEmail(ctx context.Context, email string) (*models.WaitlistRegistration, error) {
	var reg models.WaitlistRegistration
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// Position is the 1-based rank of the registration in signup order, ties broken by id.
func (r *waitlistRepository) Position(ctx context.Context, id int64) (int64, error) {
	var position int64
	err := r.db.WithContext(ctx).Model(&models.WaitlistRegistration{}).
		Where("(created_at, id) <= (SELECT created_at, id FROM waitlist_registrations WHERE id = ?)", id).
		Count(&position).Error
	return position, err
}

func (r *waitlistRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.WaitlistRegistration{}).Count(&total).Error
	return total, err
}
