package dto

import "time"

type WaitlistRequest struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,trimmedemail"`
}

type WaitlistEntry struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// WaitlistResponse keeps isExisting next to success as the landing page expects.
type WaitlistResponse struct {
	Success    bool          `json:"success"`
	Message    string        `json:"message"`
	IsExisting bool          `json:"isExisting"`
	Data       WaitlistEntry `json:"data"`
}

type WaitlistStats struct {
	TotalRegistrations int64 `json:"totalRegistrations"`
}
