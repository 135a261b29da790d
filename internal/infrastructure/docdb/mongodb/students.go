// Package mongodb provides the students collection implementation.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unifiedui/school-service/internal/core/docdb"
	"github.com/unifiedui/school-service/internal/domain/models"
)

const (
	// StudentsCollectionName is the name of the students collection.
	StudentsCollectionName = "students"
	// DefaultStudentsLimit is the page size used when none is requested.
	DefaultStudentsLimit = 50
)

// StudentsCollection implements the docdb.StudentsCollection interface for MongoDB.
type StudentsCollection struct {
	students docdb.Collection
	indexes  mongo.IndexView
}

var _ docdb.StudentsCollection = (*StudentsCollection)(nil)

// NewStudentsCollection creates a new students collection wrapper.
func NewStudentsCollection(db *mongo.Database) *StudentsCollection {
	coll := db.Collection(StudentsCollectionName)
	return &StudentsCollection{
		students: NewCollection(coll),
		indexes:  coll.Indexes(),
	}
}

// Add inserts a new student.
func (c *StudentsCollection) Add(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		return fmt.Errorf("student ID is required")
	}
	if student.TenantID == "" {
		return fmt.Errorf("tenant ID is required")
	}

	student.UpdatedAt = time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = student.UpdatedAt
	}

	if _, err := c.students.InsertOne(ctx, student); err != nil {
		return fmt.Errorf("failed to insert student: %w", err)
	}
	return nil
}

// Get retrieves a student by ID within a tenant.
func (c *StudentsCollection) Get(ctx context.Context, tenantID, id string) (*models.Student, error) {
	var student models.Student
	err := c.students.FindOne(ctx, bson.M{"_id": id, "tenantId": tenantID}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &student, nil
}

// List lists students with pagination, ordered by last name.
func (c *StudentsCollection) List(ctx context.Context, opts *docdb.ListStudentsOptions) ([]*models.Student, error) {
	if opts == nil || opts.TenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}

	filter := bson.M{"tenantId": opts.TenantID}
	if opts.Grade > 0 {
		filter["grade"] = opts.Grade
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultStudentsLimit
	}

	cursor, err := c.students.Find(ctx, filter, &docdb.FindOptions{
		Limit: limit,
		Skip:  opts.Skip,
		Sort:  bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer cursor.Close(ctx)

	var students []*models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("failed to decode students: %w", err)
	}
	return students, nil
}

// gradeGroup is one row of the summary aggregation.
type gradeGroup struct {
	Grade  int   `bson:"_id"`
	Total  int64 `bson:"total"`
	Active int64 `bson:"active"`
}

// summaryPipeline groups a tenant's students by grade, counting active ones.
func summaryPipeline(tenantID string) bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"tenantId": tenantID}},
		bson.M{"$group": bson.M{
			"_id":   "$grade",
			"total": bson.M{"$sum": 1},
			"active": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", string(models.StudentStatusActive)}}, 1, 0},
			}},
		}},
	}
}

// summaryFromGroups folds per-grade rows into a dashboard summary.
func summaryFromGroups(tenantID string, groups []gradeGroup, now time.Time) *models.DashboardSummary {
	summary := &models.DashboardSummary{
		TenantID:        tenantID,
		StudentsByGrade: make(map[int]int64, len(groups)),
		ComputedAt:      now,
	}
	for _, g := range groups {
		summary.TotalStudents += g.Total
		summary.ActiveStudents += g.Active
		summary.StudentsByGrade[g.Grade] = g.Total
	}
	return summary
}

// Summarize computes the dashboard aggregates for a tenant.
func (c *StudentsCollection) Summarize(ctx context.Context, tenantID string) (*models.DashboardSummary, error) {
	cursor, err := c.students.Aggregate(ctx, summaryPipeline(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to summarize students: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []gradeGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode student summary: %w", err)
	}

	return summaryFromGroups(tenantID, groups, time.Now().UTC()), nil
}

// EnsureIndexes creates necessary indexes for the students collection.
func (c *StudentsCollection) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "grade", Value: 1},
			},
			Options: options.Index().SetName("idx_tenant_grade"),
		},
		{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "lastName", Value: 1},
				{Key: "firstName", Value: 1},
			},
			Options: options.Index().SetName("idx_tenant_name"),
		},
	}

	if _, err := c.indexes.CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create students indexes: %w", err)
	}
	return nil
}
