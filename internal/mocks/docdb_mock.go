package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/school-service/internal/core/docdb"
	"github.com/unifiedui/school-service/internal/domain/models"
)

// MockStudentsCollection is a mock implementation of docdb.StudentsCollection.
type MockStudentsCollection struct {
	mock.Mock
}

var _ docdb.StudentsCollection = (*MockStudentsCollection)(nil)

// Add inserts a new student.
func (m *MockStudentsCollection) Add(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

// Get retrieves a student by ID.
func (m *MockStudentsCollection) Get(ctx context.Context, tenantID, id string) (*models.Student, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

// List lists students.
func (m *MockStudentsCollection) List(ctx context.Context, opts *docdb.ListStudentsOptions) ([]*models.Student, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Student), args.Error(1)
}

// Summarize computes the dashboard aggregates for a tenant.
func (m *MockStudentsCollection) Summarize(ctx context.Context, tenantID string) (*models.DashboardSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardSummary), args.Error(1)
}

// MockDatabase is a mock implementation of docdb.Database.
type MockDatabase struct {
	mock.Mock
}

// Collection returns a collection from the database.
func (m *MockDatabase) Collection(name string) docdb.Collection {
	args := m.Called(name)
	return args.Get(0).(docdb.Collection)
}

// MockDocDBClient is a mock implementation of docdb.Client.
type MockDocDBClient struct {
	mock.Mock
	students *MockStudentsCollection
	database *MockDatabase
}

var _ docdb.Client = (*MockDocDBClient)(nil)

// NewMockDocDBClient creates a new MockDocDBClient.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{
		students: &MockStudentsCollection{},
		database: &MockDatabase{},
	}
}

// Database returns the mock database.
func (m *MockDocDBClient) Database() docdb.Database {
	return m.database
}

// Students returns the students collection.
func (m *MockDocDBClient) Students() docdb.StudentsCollection {
	return m.students
}

// StudentsMock returns the mock students collection for setting expectations.
func (m *MockDocDBClient) StudentsMock() *MockStudentsCollection {
	return m.students
}

// Ping verifies the database connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// EnsureIndexes creates indexes.
func (m *MockDocDBClient) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the database connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
