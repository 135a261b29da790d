// Package models contains domain models for the school service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentStatus represents the enrollment status of a student.
type StudentStatus string

const (
	// StudentStatusActive is an enrolled student.
	StudentStatusActive StudentStatus = "active"
	// StudentStatusInactive is a withdrawn or graduated student.
	StudentStatusInactive StudentStatus = "inactive"
)

// Student represents a student record owned by a tenant (a school).
type Student struct {
	ID        string        `json:"id" bson:"_id"`
	TenantID  string        `json:"tenantId" bson:"tenantId"`
	FirstName string        `json:"firstName" bson:"firstName"`
	LastName  string        `json:"lastName" bson:"lastName"`
	Grade     int           `json:"grade" bson:"grade"`
	ClassID   string        `json:"classId,omitempty" bson:"classId,omitempty"`
	Status    StudentStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// NewStudent creates an active student with a fresh ID.
func NewStudent(tenantID, firstName, lastName string, grade int, classID string) *Student {
	now := time.Now().UTC()
	return &Student{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		FirstName: firstName,
		LastName:  lastName,
		Grade:     grade,
		ClassID:   classID,
		Status:    StudentStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullName returns the display name of the student.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
