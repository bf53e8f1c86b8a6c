package dto

import "time"

type VoteRequest struct {
	VoteType string `json:"voteType" binding:"required,oneof=upvote downvote"`
}

// VoteResponse reports the item's counters and the caller's vote after a vote request.
type VoteResponse struct {
	FeedbackID int64   `json:"feedbackId"`
	Upvotes    int     `json:"upvotes"`
	Downvotes  int     `json:"downvotes"`
	UserVote   *string `json:"userVote"`
	Action     string  `json:"action,omitempty"`
}

// VoteStatusResponse is the read-only view of the caller's vote.
type VoteStatusResponse struct {
	FeedbackID int64      `json:"feedbackId"`
	Upvotes    int        `json:"upvotes"`
	Downvotes  int        `json:"downvotes"`
	UserVote   *string    `json:"userVote"`
	VotedAt    *time.Time `json:"votedAt"`
}
