// Package docdb provides the students collection interface.
package docdb

import (
	"context"

	"github.com/unifiedui/school-service/internal/domain/models"
)

// ListStudentsOptions contains options for listing students.
type ListStudentsOptions struct {
	TenantID string // Required for tenant isolation
	Grade    int    // Zero lists every grade
	Limit    int64
	Skip     int64
}

// StudentsCollection defines the interface for student collection operations.
// Every operation is scoped to a single tenant.
type StudentsCollection interface {
	// Add inserts a new student.
	Add(ctx context.Context, student *models.Student) error

	// Get retrieves a student by ID. Returns nil if not found.
	Get(ctx context.Context, tenantID, id string) (*models.Student, error)

	// List lists students with pagination, ordered by last name.
	List(ctx context.Context, opts *ListStudentsOptions) ([]*models.Student, error)

	// Summarize computes the dashboard aggregates for a tenant.
	Summarize(ctx context.Context, tenantID string) (*models.DashboardSummary, error)
}
