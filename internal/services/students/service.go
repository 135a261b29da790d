// Package students manages student records with a per-tenant hash cache in
// front of the document database.
package students

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unifiedui/school-service/internal/core/cache"
	"github.com/unifiedui/school-service/internal/core/docdb"
	domainerrors "github.com/unifiedui/school-service/internal/domain/errors"
	"github.com/unifiedui/school-service/internal/domain/models"
	"github.com/unifiedui/school-service/internal/services/dashboard"
)

const (
	// DefaultStudentsTTL is the lifetime of a tenant's student hash, refreshed on every write.
	DefaultStudentsTTL = 10 * time.Minute

	// MinGrade and MaxGrade bound the accepted grade levels.
	MinGrade = 1
	MaxGrade = 13
)

// StudentsKey returns the hash key holding a tenant's cached students.
func StudentsKey(tenantID string) string {
	return fmt.Sprintf("tenant:%s:students", tenantID)
}

// CreateInput holds the fields accepted when creating a student.
type CreateInput struct {
	FirstName string
	LastName  string
	Grade     int
	ClassID   string
}

// Validate checks the input.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return domainerrors.NewValidationError("first name is required", "")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return domainerrors.NewValidationError("last name is required", "")
	}
	if in.Grade < MinGrade || in.Grade > MaxGrade {
		return domainerrors.NewValidationError("grade out of range", fmt.Sprintf("grade=%d", in.Grade))
	}
	return nil
}

// Service manages students.
type Service interface {
	// Create validates and stores a new student, then invalidates the tenant's cached views.
	Create(ctx context.Context, tenantID string, input CreateInput) (*models.Student, error)

	// Get returns a student, reading through the tenant's student hash.
	Get(ctx context.Context, tenantID, studentID string) (*models.Student, error)

	// List returns a page of students straight from the store.
	List(ctx context.Context, opts *docdb.ListStudentsOptions) ([]*models.Student, error)

	// Cached returns the students currently held in the tenant's hash, keyed by ID.
	Cached(ctx context.Context, tenantID string) map[string]models.Student
}

// Config holds the configuration for the students service.
type Config struct {
	CacheClient cache.Client
	Students    docdb.StudentsCollection
	Dashboard   dashboard.Service
	TTL         time.Duration
	Logger      zerolog.Logger
}

type service struct {
	cacheClient cache.Client
	students    docdb.StudentsCollection
	dashboard   dashboard.Service
	ttl         time.Duration
	logger      zerolog.Logger
}

// NewService creates a new students service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.CacheClient == nil {
		return nil, fmt.Errorf("cache client is required")
	}
	if cfg.Students == nil {
		return nil, fmt.Errorf("students collection is required")
	}
	if cfg.Dashboard == nil {
		return nil, fmt.Errorf("dashboard service is required")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultStudentsTTL
	}

	return &service{
		cacheClient: cfg.CacheClient,
		students:    cfg.Students,
		dashboard:   cfg.Dashboard,
		ttl:         ttl,
		logger:      cfg.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, tenantID string, input CreateInput) (*models.Student, error) {
	if tenantID == "" {
		return nil, domainerrors.NewValidationError("tenant ID is required", "")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	student := models.NewStudent(tenantID, strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName), input.Grade, input.ClassID)
	if err := s.students.Add(ctx, student); err != nil {
		return nil, domainerrors.NewInternalError("failed to create student", err)
	}

	s.dashboard.Invalidate(ctx, tenantID, "student created")
	s.remember(ctx, student)
	s.dashboard.RecordActivity(ctx, &models.Activity{
		Type:      models.ActivityStudentCreated,
		TenantID:  tenantID,
		SubjectID: student.ID,
		Summary:   fmt.Sprintf("%s joined grade %d", student.FullName(), student.Grade),
	})

	s.logger.Info().
		Str("tenant_id", tenantID).
		Str("student_id", student.ID).
		Msg("student created")

	return student, nil
}

func (s *service) Get(ctx context.Context, tenantID, studentID string) (*models.Student, error) {
	var cached models.Student
	if s.cacheClient.HGet(ctx, StudentsKey(tenantID), studentID, &cached) {
		return &cached, nil
	}

	student, err := s.students.Get(ctx, tenantID, studentID)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to load student", err)
	}
	if student == nil {
		return nil, domainerrors.NewNotFoundError("student", studentID)
	}

	s.remember(ctx, student)
	return student, nil
}

func (s *service) List(ctx context.Context, opts *docdb.ListStudentsOptions) ([]*models.Student, error) {
	if opts == nil || opts.TenantID == "" {
		return nil, domainerrors.NewValidationError("tenant ID is required", "")
	}

	list, err := s.students.List(ctx, opts)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to list students", err)
	}
	return list, nil
}

func (s *service) Cached(ctx context.Context, tenantID string) map[string]models.Student {
	raw := s.cacheClient.HGetAll(ctx, StudentsKey(tenantID))

	out := make(map[string]models.Student, len(raw))
	for id, entry := range raw {
		var student models.Student
		if err := json.Unmarshal(entry, &student); err != nil {
			continue
		}
		out[id] = student
	}
	return out
}

// remember writes the student into the tenant hash and refreshes its lifetime.
func (s *service) remember(ctx context.Context, student *models.Student) {
	key := StudentsKey(student.TenantID)
	s.cacheClient.HSet(ctx, key, student.ID, student)
	s.cacheClient.Expire(ctx, key, s.ttl)
}
