package dto

import (
	"encoding/json"
	"time"
)

// Envelope is the server's response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Details []FieldError    `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	User        User   `json:"user"`
}

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Domain      string  `json:"domain"`
}

type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Domain      string    `json:"domain"`
	APIKey      string    `json:"apiKey"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProjectList struct {
	Projects []Project `json:"projects"`
	Count    int       `json:"count"`
}

type ProjectStats struct {
	ProjectID       int64 `json:"projectId"`
	TotalFeedback   int64 `json:"totalFeedback"`
	TotalVotes      int64 `json:"totalVotes"`
	FeatureRequests int64 `json:"featureRequests"`
	BugReports      int64 `json:"bugReports"`
	Improvements    int64 `json:"improvements"`
	OpenItems       int64 `json:"openItems"`
	InProgressItems int64 `json:"inProgressItems"`
	ClosedItems     int64 `json:"closedItems"`
	Cached          bool  `json:"cached"`
}

type FeedbackItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"createdAt"`
}

type FeedbackList struct {
	Feedback  []FeedbackItem `json:"feedback"`
	Count     int            `json:"count"`
	ProjectID int64          `json:"projectId"`
}

// FeedbackFilter maps onto the list endpoint's query string.
type FeedbackFilter struct {
	ProjectID int64
	Type      string
	Status    string
	Sort      string
	Search    string
	Limit     int
}

type StatusResponse struct {
	ID             int64  `json:"id"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus"`
}

type WaitlistStats struct {
	TotalRegistrations int64 `json:"totalRegistrations"`
}
