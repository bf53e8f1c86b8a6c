package repository

import (
	"context"
	"errors"
	"time"

	"feedbackme/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteOutcome is the state of an item right after a vote request was applied.
type VoteOutcome struct {
	ProjectID  int64
	Upvotes    int
	Downvotes  int
	Transition models.VoteTransition
}

type VoteRepository interface {
	// Apply toggles or switches the user's vote and adjusts the item's counters atomically.
	Apply(ctx context.Context, feedbackID int64, userID, voteType string) (*VoteOutcome, error)
	FindByUserAndItem(ctx context.Context, userID string, feedbackID int64) (*models.Vote, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Apply runs in one transaction holding the item row lock, so concurrent votes on the
// same item serialize and counters only ever move through GREATEST(col + delta, 0).
func (r *voteRepository) Apply(ctx context.Context, feedbackID int64, userID, voteType string) (*VoteOutcome, error) {
	var outcome VoteOutcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.FeedbackItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "project_id").
			First(&item, feedbackID).Error; err != nil {
			return err
		}

		var existing models.Vote
		var current *string
		err := tx.Where("user_id = ? AND feedback_item_id = ?", userID, feedbackID).Take(&existing).Error
		switch {
		case err == nil:
			current = &existing.VoteType
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		transition := models.ResolveVote(current, voteType)

		switch transition.Op {
		case models.VoteOpCreate:
			err = tx.Create(&models.Vote{
				FeedbackItemID: feedbackID,
				UserID:         userID,
				VoteType:       voteType,
			}).Error
		case models.VoteOpDelete:
			err = tx.Delete(&models.Vote{}, existing.ID).Error
		case models.VoteOpSwitch:
			err = tx.Model(&models.Vote{}).Where("id = ?", existing.ID).Updates(map[string]any{
				"vote_type":  voteType,
				"created_at": time.Now().UTC(),
			}).Error
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.FeedbackItem{}).Where("id = ?", feedbackID).UpdateColumns(map[string]any{
			"upvotes":   gorm.Expr("GREATEST(upvotes + ?, 0)", transition.UpDelta),
			"downvotes": gorm.Expr("GREATEST(downvotes + ?, 0)", transition.DownDelta),
		}).Error; err != nil {
			return err
		}

		var counters models.FeedbackItem
		if err := tx.Select("upvotes", "downvotes").Where("id = ?", feedbackID).Take(&counters).Error; err != nil {
			return err
		}

		outcome = VoteOutcome{
			ProjectID:  item.ProjectID,
			Upvotes:    counters.Upvotes,
			Downvotes:  counters.Downvotes,
			Transition: transition,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (r *voteRepository) FindByUserAndItem(ctx context.Context, userID string, feedbackID int64) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND feedback_item_id = ?", userID, feedbackID).
		Take(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}
