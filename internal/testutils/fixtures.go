package testutils

import (
	"time"

	"github.com/unifiedui/school-service/internal/domain/models"
)

// Test constants
const (
	TestTenantID  = "tenant-test-123"
	TestStudentID = "student-test-456"
	TestClassID   = "class-test-789"
)

// NewTestStudent creates a test student with default values.
func NewTestStudent() *models.Student {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	return &models.Student{
		ID:        TestStudentID,
		TenantID:  TestTenantID,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Grade:     7,
		ClassID:   TestClassID,
		Status:    models.StudentStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestSummary creates a dashboard summary for a tenant.
func NewTestSummary(tenantID string, total int64) *models.DashboardSummary {
	return &models.DashboardSummary{
		TenantID:        tenantID,
		TotalStudents:   total,
		ActiveStudents:  total,
		StudentsByGrade: map[int]int64{7: total},
		ComputedAt:      time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	}
}
