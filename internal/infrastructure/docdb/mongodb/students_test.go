package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSummaryFromGroups(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	groups := []gradeGroup{
		{Grade: 7, Total: 20, Active: 18},
		{Grade: 5, Total: 25, Active: 25},
	}

	summary := summaryFromGroups("tenant-1", groups, now)

	assert.Equal(t, "tenant-1", summary.TenantID)
	assert.Equal(t, int64(45), summary.TotalStudents)
	assert.Equal(t, int64(43), summary.ActiveStudents)
	assert.Equal(t, map[int]int64{5: 25, 7: 20}, summary.StudentsByGrade)
	assert.Equal(t, now, summary.ComputedAt)
}

func TestSummaryFromGroups_Empty(t *testing.T) {
	summary := summaryFromGroups("tenant-1", nil, time.Now())

	assert.Zero(t, summary.TotalStudents)
	assert.NotNil(t, summary.StudentsByGrade)
}

func TestSummaryPipeline_ScopesToTenant(t *testing.T) {
	pipeline := summaryPipeline("tenant-1")
	require.Len(t, pipeline, 2)

	match, ok := pipeline[0].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.M{"tenantId": "tenant-1"}, match["$match"])
}
