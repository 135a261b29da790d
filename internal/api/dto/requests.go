// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// CreateStudentRequest represents the request body for creating a student.
type CreateStudentRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Grade     int    `json:"grade" binding:"required,min=1,max=13"`
	ClassID   string `json:"classId" binding:"omitempty,max=64"`
}

// WarmCacheRequest represents the request body for pre-computing tenant dashboards.
type WarmCacheRequest struct {
	TenantIDs []string `json:"tenantIds" binding:"required,min=1,max=500,dive,required"`
}

// ActivityQuery holds the query parameters of the activity feed.
type ActivityQuery struct {
	Limit int64 `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ListStudentsQuery holds the query parameters for listing students.
type ListStudentsQuery struct {
	Grade  int   `form:"grade" binding:"omitempty,min=1,max=13"`
	Limit  int64 `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int64 `form:"offset" binding:"omitempty,min=0"`
}
