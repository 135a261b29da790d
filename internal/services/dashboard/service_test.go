package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/school-service/internal/domain/models"
	"github.com/unifiedui/school-service/internal/mocks"
	"github.com/unifiedui/school-service/internal/services/dashboard"
	"github.com/unifiedui/school-service/internal/testutils"
)

func newService(t *testing.T, students *mocks.MockStudentsCollection) (dashboard.Service, *miniredis.Miniredis) {
	t.Helper()

	mr, client, _ := testutils.NewCacheClient(t)
	svc, err := dashboard.NewService(&dashboard.Config{
		CacheClient: client,
		Students:    students,
		TTL:         time.Minute,
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)

	return svc, mr
}

func TestNewService_Validation(t *testing.T) {
	_, err := dashboard.NewService(nil)
	assert.Error(t, err)

	_, err = dashboard.NewService(&dashboard.Config{Students: &mocks.MockStudentsCollection{}})
	assert.ErrorContains(t, err, "cache client")

	_, err = dashboard.NewService(&dashboard.Config{CacheClient: mocks.NewMockCacheClient()})
	assert.ErrorContains(t, err, "students")
}

func TestGetSummary_ReadThrough(t *testing.T) {
	ctx := context.Background()
	mr, client, _ := testutils.NewCacheClient(t)
	students := &mocks.MockStudentsCollection{}
	students.On("Summarize", mock.Anything, "tenant-a").Return(testutils.NewTestSummary("tenant-a", 42), nil).Once()

	svc, err := dashboard.NewService(&dashboard.Config{CacheClient: client, Students: students, TTL: time.Minute})
	require.NoError(t, err)

	first, err := svc.GetSummary(ctx, "tenant-a")
	require.NoError(t, err)
	assert.Equal(t, int64(42), first.TotalStudents)

	assert.True(t, mr.Exists(dashboard.SummaryKey("tenant-a")))
	assert.Equal(t, time.Minute, mr.TTL(dashboard.SummaryKey("tenant-a")))

	second, err := svc.GetSummary(ctx, "tenant-a")
	require.NoError(t, err)
	assert.Equal(t, int64(42), second.TotalStudents)
	assert.Equal(t, map[int]int64{7: 42}, second.StudentsByGrade)

	students.AssertNumberOfCalls(t, "Summarize", 1)
}

func TestGetSummary_CacheOutageFallsThrough(t *testing.T) {
	ctx := context.Background()
	students := &mocks.MockStudentsCollection{}
	students.On("Summarize", mock.Anything, "tenant-a").Return(testutils.NewTestSummary("tenant-a", 3), nil)

	svc, mr := newService(t, students)
	mr.SetError("ERR forced failure")

	for i := 0; i < 2; i++ {
		summary, err := svc.GetSummary(ctx, "tenant-a")
		require.NoError(t, err)
		assert.Equal(t, int64(3), summary.TotalStudents)
	}

	students.AssertNumberOfCalls(t, "Summarize", 2)
}

func TestGetSummary_StoreError(t *testing.T) {
	students := &mocks.MockStudentsCollection{}
	students.On("Summarize", mock.Anything, "tenant-a").Return(nil, errors.New("mongo down"))

	svc, _ := newService(t, students)

	summary, err := svc.GetSummary(context.Background(), "tenant-a")
	assert.Nil(t, summary)
	assert.ErrorContains(t, err, "mongo down")
}

func TestGetSummaries_ComputesOnlyMisses(t *testing.T) {
	ctx := context.Background()
	mr, client, _ := testutils.NewCacheClient(t)

	cached, err := json.Marshal(testutils.NewTestSummary("tenant-a", 10))
	require.NoError(t, err)
	require.NoError(t, mr.Set(dashboard.SummaryKey("tenant-a"), string(cached)))

	students := &mocks.MockStudentsCollection{}
	students.On("Summarize", mock.Anything, "tenant-b").Return(testutils.NewTestSummary("tenant-b", 20), nil).Once()
	students.On("Summarize", mock.Anything, "tenant-c").Return(testutils.NewTestSummary("tenant-c", 30), nil).Once()

	svc, err := dashboard.NewService(&dashboard.Config{CacheClient: client, Students: students})
	require.NoError(t, err)

	summaries, err := svc.GetSummaries(ctx, []string{"tenant-b", "tenant-a", "tenant-c"})
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "tenant-b", summaries[0].TenantID)
	assert.Equal(t, "tenant-a", summaries[1].TenantID)
	assert.Equal(t, int64(10), summaries[1].TotalStudents)
	assert.Equal(t, "tenant-c", summaries[2].TenantID)

	assert.True(t, mr.Exists(dashboard.SummaryKey("tenant-b")))
	assert.True(t, mr.Exists(dashboard.SummaryKey("tenant-c")))
	assert.Equal(t, dashboard.DefaultSummaryTTL, mr.TTL(dashboard.SummaryKey("tenant-c")))

	_, err = svc.GetSummaries(ctx, []string{"tenant-a", "tenant-b", "tenant-c"})
	require.NoError(t, err)
	students.AssertExpectations(t)
}

func TestGetSummaries_Empty(t *testing.T) {
	svc, _ := newService(t, &mocks.MockStudentsCollection{})

	summaries, err := svc.GetSummaries(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestInvalidate_DropsTenantKeysAndAnnounces(t *testing.T) {
	ctx := context.Background()
	mr, client, _ := testutils.NewCacheClient(t)

	for _, key := range []string{"tenant:t1:dashboard", "tenant:t1:students", "tenant:t2:dashboard", "activity:t1"} {
		require.NoError(t, mr.Set(key, `{}`))
	}

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	sub := rdb.Subscribe(ctx, dashboard.InvalidationChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	svc, err := dashboard.NewService(&dashboard.Config{CacheClient: client, Students: &mocks.MockStudentsCollection{}})
	require.NoError(t, err)

	svc.Invalidate(ctx, "t1", "student created")

	assert.ElementsMatch(t, []string{"activity:t1", "tenant:t2:dashboard", dashboard.ActiveTenantsKey}, mr.Keys())

	recvCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(recvCtx)
	require.NoError(t, err)

	var event models.InvalidationEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
	assert.Equal(t, "t1", event.TenantID)
	assert.Equal(t, "tenant:t1:*", event.Pattern)
	assert.Equal(t, "student created", event.Reason)
	assert.False(t, event.At.IsZero())
}

func TestActiveTenants(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, &mocks.MockStudentsCollection{})

	assert.Empty(t, svc.ActiveTenants(ctx))

	svc.Invalidate(ctx, "t1", "manual")
	svc.Invalidate(ctx, "t2", "manual")
	svc.Invalidate(ctx, "t1", "manual")

	assert.ElementsMatch(t, []string{"t1", "t2"}, svc.ActiveTenants(ctx))
}

func TestActivityFeed_NewestFirst(t *testing.T) {
	ctx := context.Background()
	mr, client, _ := testutils.NewCacheClient(t)
	svc, err := dashboard.NewService(&dashboard.Config{CacheClient: client, Students: &mocks.MockStudentsCollection{}})
	require.NoError(t, err)

	for _, subject := range []string{"s1", "s2", "s3"} {
		svc.RecordActivity(ctx, &models.Activity{
			Type:      models.ActivityStudentCreated,
			TenantID:  "t1",
			SubjectID: subject,
			Summary:   "student added",
		})
	}

	feed := svc.RecentActivity(ctx, "t1", 2)
	require.Len(t, feed, 2)
	assert.Equal(t, "s3", feed[0].SubjectID)
	assert.Equal(t, "s2", feed[1].SubjectID)
	assert.False(t, feed[0].OccurredAt.IsZero())

	assert.Len(t, svc.RecentActivity(ctx, "t1", 0), 3)
	assert.Equal(t, dashboard.ActivityFeedTTL, mr.TTL(dashboard.ActivityKey("t1")))
}

func TestActivityFeed_IgnoresEntriesWithoutTenant(t *testing.T) {
	ctx := context.Background()
	mr, client, _ := testutils.NewCacheClient(t)
	svc, err := dashboard.NewService(&dashboard.Config{CacheClient: client, Students: &mocks.MockStudentsCollection{}})
	require.NoError(t, err)

	svc.RecordActivity(ctx, nil)
	svc.RecordActivity(ctx, &models.Activity{Type: models.ActivityStudentCreated})

	assert.Empty(t, mr.Keys())
}

func TestActivityFeed_CacheOutageReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, mr := newService(t, &mocks.MockStudentsCollection{})
	mr.SetError("ERR forced failure")

	svc.RecordActivity(ctx, &models.Activity{TenantID: "t1", Type: models.ActivityStudentCreated})

	feed := svc.RecentActivity(ctx, "t1", 10)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}
