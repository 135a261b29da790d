package students_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/school-service/internal/core/docdb"
	domainerrors "github.com/unifiedui/school-service/internal/domain/errors"
	"github.com/unifiedui/school-service/internal/domain/models"
	"github.com/unifiedui/school-service/internal/mocks"
	"github.com/unifiedui/school-service/internal/services/dashboard"
	"github.com/unifiedui/school-service/internal/services/students"
	"github.com/unifiedui/school-service/internal/testutils"
)

type fixture struct {
	mr        *miniredis.Miniredis
	store     *mocks.MockStudentsCollection
	dashboard dashboard.Service
	svc       students.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()

	mr, client, _ := testutils.NewCacheClient(t)
	store := &mocks.MockStudentsCollection{}

	dash, err := dashboard.NewService(&dashboard.Config{CacheClient: client, Students: store})
	require.NoError(t, err)

	svc, err := students.NewService(&students.Config{
		CacheClient: client,
		Students:    store,
		Dashboard:   dash,
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)

	return &fixture{mr: mr, store: store, dashboard: dash, svc: svc}
}

func seedStudent(t *testing.T, mr *miniredis.Miniredis, student *models.Student) {
	t.Helper()
	payload, err := json.Marshal(student)
	require.NoError(t, err)
	mr.HSet(students.StudentsKey(student.TenantID), student.ID, string(payload))
}

func TestNewService_Validation(t *testing.T) {
	_, err := students.NewService(nil)
	assert.Error(t, err)

	_, err = students.NewService(&students.Config{
		CacheClient: mocks.NewMockCacheClient(),
		Students:    &mocks.MockStudentsCollection{},
	})
	assert.ErrorContains(t, err, "dashboard")
}

func TestCreateInput_Validate(t *testing.T) {
	tests := []struct {
		name  string
		input students.CreateInput
		valid bool
	}{
		{"valid", students.CreateInput{FirstName: "Ada", LastName: "Lovelace", Grade: 7}, true},
		{"missing first name", students.CreateInput{FirstName: " ", LastName: "Lovelace", Grade: 7}, false},
		{"missing last name", students.CreateInput{FirstName: "Ada", Grade: 7}, false},
		{"grade too low", students.CreateInput{FirstName: "Ada", LastName: "Lovelace", Grade: 0}, false},
		{"grade too high", students.CreateInput{FirstName: "Ada", LastName: "Lovelace", Grade: 14}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, domainerrors.IsValidationError(err))
		})
	}
}

func TestCreate_StoresAndInvalidates(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	tenant := testutils.TestTenantID

	require.NoError(t, f.mr.Set(dashboard.SummaryKey(tenant), `{"tenantId":"`+tenant+`"}`))
	f.store.On("Add", mock.Anything, mock.MatchedBy(func(s *models.Student) bool {
		return s.TenantID == tenant && s.FirstName == "Ada" && s.Status == models.StudentStatusActive
	})).Return(nil).Once()

	student, err := f.svc.Create(ctx, tenant, students.CreateInput{FirstName: " Ada ", LastName: "Lovelace", Grade: 7})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, "Ada", student.FirstName)

	assert.False(t, f.mr.Exists(dashboard.SummaryKey(tenant)))
	assert.Equal(t, students.DefaultStudentsTTL, f.mr.TTL(students.StudentsKey(tenant)))

	cached := f.svc.Cached(ctx, tenant)
	require.Contains(t, cached, student.ID)
	assert.Equal(t, "Lovelace", cached[student.ID].LastName)

	feed := f.dashboard.RecentActivity(ctx, tenant, 10)
	require.Len(t, feed, 1)
	assert.Equal(t, models.ActivityStudentCreated, feed[0].Type)
	assert.Equal(t, student.ID, feed[0].SubjectID)

	assert.Equal(t, []string{tenant}, f.dashboard.ActiveTenants(ctx))
	f.store.AssertExpectations(t)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), testutils.TestTenantID, students.CreateInput{FirstName: "Ada", Grade: 7})
	assert.True(t, domainerrors.IsValidationError(err))

	_, err = f.svc.Create(context.Background(), "", students.CreateInput{FirstName: "Ada", LastName: "L", Grade: 7})
	assert.True(t, domainerrors.IsValidationError(err))

	f.store.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreate_StoreFailureCachesNothing(t *testing.T) {
	f := setup(t)
	f.store.On("Add", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	_, err := f.svc.Create(context.Background(), testutils.TestTenantID, students.CreateInput{FirstName: "Ada", LastName: "L", Grade: 7})

	domainErr, ok := domainerrors.GetDomainError(err)
	require.True(t, ok)
	assert.Equal(t, domainerrors.ErrCodeInternal, domainErr.Code)
	assert.Empty(t, f.mr.Keys())
}

func TestGet_CacheHit(t *testing.T) {
	f := setup(t)
	seedStudent(t, f.mr, testutils.NewTestStudent())

	student, err := f.svc.Get(context.Background(), testutils.TestTenantID, testutils.TestStudentID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", student.FullName())

	f.store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestGet_ReadThrough(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.store.On("Get", mock.Anything, testutils.TestTenantID, testutils.TestStudentID).
		Return(testutils.NewTestStudent(), nil).Once()

	for i := 0; i < 3; i++ {
		student, err := f.svc.Get(ctx, testutils.TestTenantID, testutils.TestStudentID)
		require.NoError(t, err)
		assert.Equal(t, testutils.TestStudentID, student.ID)
	}

	f.store.AssertNumberOfCalls(t, "Get", 1)
	assert.True(t, f.mr.Exists(students.StudentsKey(testutils.TestTenantID)))
}

func TestGet_NotFound(t *testing.T) {
	f := setup(t)
	f.store.On("Get", mock.Anything, testutils.TestTenantID, "missing").Return(nil, nil)

	_, err := f.svc.Get(context.Background(), testutils.TestTenantID, "missing")
	assert.True(t, domainerrors.IsNotFound(err))
	assert.Empty(t, f.mr.Keys())
}

func TestGet_StoreError(t *testing.T) {
	f := setup(t)
	f.store.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := f.svc.Get(context.Background(), testutils.TestTenantID, testutils.TestStudentID)
	assert.ErrorContains(t, err, "timeout")
}

func TestGet_CacheOutageFallsThrough(t *testing.T) {
	f := setup(t)
	f.mr.SetError("ERR forced failure")
	f.store.On("Get", mock.Anything, testutils.TestTenantID, testutils.TestStudentID).Return(testutils.NewTestStudent(), nil)

	for i := 0; i < 2; i++ {
		_, err := f.svc.Get(context.Background(), testutils.TestTenantID, testutils.TestStudentID)
		require.NoError(t, err)
	}

	f.store.AssertNumberOfCalls(t, "Get", 2)
}

func TestCached_SkipsUndecodableEntries(t *testing.T) {
	f := setup(t)
	seedStudent(t, f.mr, testutils.NewTestStudent())
	f.mr.HSet(students.StudentsKey(testutils.TestTenantID), "broken", "{not json")

	cached := f.svc.Cached(context.Background(), testutils.TestTenantID)

	assert.Len(t, cached, 1)
	assert.Contains(t, cached, testutils.TestStudentID)
}

func TestList(t *testing.T) {
	f := setup(t)
	opts := &docdb.ListStudentsOptions{TenantID: testutils.TestTenantID, Grade: 7, Limit: 10}
	f.store.On("List", mock.Anything, opts).Return([]*models.Student{testutils.NewTestStudent()}, nil)

	list, err := f.svc.List(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.List(context.Background(), &docdb.ListStudentsOptions{})
	assert.True(t, domainerrors.IsValidationError(err))
}
