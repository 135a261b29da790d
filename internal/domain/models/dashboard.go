package models

import "time"

// DashboardSummary holds the aggregate figures shown on a tenant dashboard.
type DashboardSummary struct {
	TenantID        string        `json:"tenantId"`
	TotalStudents   int64         `json:"totalStudents"`
	ActiveStudents  int64         `json:"activeStudents"`
	StudentsByGrade map[int]int64 `json:"studentsByGrade"`
	ComputedAt      time.Time     `json:"computedAt"`
}

// ActivityType identifies what happened in an activity entry.
type ActivityType string

const (
	// ActivityStudentCreated is recorded when a student is added.
	ActivityStudentCreated ActivityType = "student.created"
	// ActivityCacheInvalidated is recorded when a tenant's cached data is dropped.
	ActivityCacheInvalidated ActivityType = "cache.invalidated"
)

// Activity is one entry of a tenant's recent activity feed.
type Activity struct {
	Type       ActivityType `json:"type"`
	TenantID   string       `json:"tenantId"`
	SubjectID  string       `json:"subjectId,omitempty"`
	Summary    string       `json:"summary"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// InvalidationEvent is published whenever a tenant's cached entries are dropped.
type InvalidationEvent struct {
	TenantID string    `json:"tenantId"`
	Pattern  string    `json:"pattern"`
	Reason   string    `json:"reason"`
	At       time.Time `json:"at"`
}
