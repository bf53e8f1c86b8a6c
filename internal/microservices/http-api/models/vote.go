package models

import "time"

const (
	VoteTypeUpvote   = "upvote"
	VoteTypeDownvote = "downvote"
)

type Vote struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FeedbackItemID int64     `gorm:"not null;uniqueIndex:uq_votes_user_item,priority:2" json:"feedbackItemId"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:uq_votes_user_item,priority:1" json:"userId"`
	VoteType       string    `gorm:"not null" json:"voteType"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Vote) TableName() string {
	return "votes"
}

func IsValidVoteType(t string) bool {
	return t == VoteTypeUpvote || t == VoteTypeDownvote
}

// VoteOp is the row operation a vote request resolves to.
type VoteOp int

const (
	VoteOpCreate VoteOp = iota
	VoteOpDelete
	VoteOpSwitch
)

// VoteTransition describes how one vote request changes the vote row and the item's counters.
type VoteTransition struct {
	Op        VoteOp
	UpDelta   int
	DownDelta int
	// Result is the caller's vote after the transition, nil when toggled off.
	Result *string
	Action string
}

// ResolveVote decides the transition from the caller's current vote (nil when none) to the requested one.
// Same type toggles off, opposite type switches, no vote creates.
func ResolveVote(current *string, desired string) VoteTransition {
	sign := 1
	if desired == VoteTypeDownvote {
		sign = -1
	}
	// counters touched by the desired type and by the opposite type
	up, down := (1+sign)/2, (1-sign)/2

	switch {
	case current == nil:
		result := desired
		return VoteTransition{Op: VoteOpCreate, UpDelta: up, DownDelta: down, Result: &result, Action: "added " + desired}

	case *current == desired:
		return VoteTransition{Op: VoteOpDelete, UpDelta: -up, DownDelta: -down, Action: "removed " + desired}

	default:
		result := desired
		return VoteTransition{Op: VoteOpSwitch, UpDelta: sign, DownDelta: -sign, Result: &result, Action: "changed to " + desired}
	}
}
