package dto

import "feedbackme/internal/microservices/http-api/models"

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Count         int                   `json:"count"`
}
