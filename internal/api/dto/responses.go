package dto

import (
	"time"

	"github.com/unifiedui/school-service/internal/domain/models"
)

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// StudentResponse represents a student in API responses.
type StudentResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Grade     int       `json:"grade"`
	ClassID   string    `json:"classId,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewStudentResponse converts a student model.
func NewStudentResponse(s *models.Student) *StudentResponse {
	return &StudentResponse{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		FullName:  s.FullName(),
		Grade:     s.Grade,
		ClassID:   s.ClassID,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
	}
}

// ActivityResponse represents the activity feed of a tenant.
type ActivityResponse struct {
	Activities []models.Activity `json:"activities"`
	Count      int               `json:"count"`
}

// WarmCacheResponse reports the dashboards held in cache after warming.
type WarmCacheResponse struct {
	Warmed int `json:"warmed"`
}

// KeyExistsResponse reports whether a cache key exists.
type KeyExistsResponse struct {
	Key    string `json:"key"`
	Exists bool   `json:"exists"`
}

// ActiveTenantsResponse lists tenants known to the invalidation registry.
type ActiveTenantsResponse struct {
	Tenants []string `json:"tenants"`
}

// CachedStudentsResponse lists the students held in a tenant's cache.
type CachedStudentsResponse struct {
	Students []*StudentResponse `json:"students"`
	Count    int                `json:"count"`
}

// ListStudentsResponse represents a page of students.
type ListStudentsResponse struct {
	Students []*StudentResponse `json:"students"`
	Count    int                `json:"count"`
	Limit    int64              `json:"limit"`
	Offset   int64              `json:"offset"`
}
