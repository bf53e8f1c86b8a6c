package dto

import "feedbackme/internal/microservices/http-api/models"

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Domain      string  `json:"domain" binding:"required,projectdomain"`
}

// UpdateProjectRequest carries the mutable project fields; the API key is never updatable.
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
}

func (r *UpdateProjectRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.IsActive == nil
}

type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	Count    int              `json:"count"`
}

type ProjectStatsResponse struct {
	ProjectID int64 `json:"projectId"`
	models.ProjectStats
	Cached bool `json:"cached"`
}
