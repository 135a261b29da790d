// Package dashboard serves tenant dashboards through the cache, falling back
// to the document database whenever the cache has nothing usable.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/unifiedui/school-service/internal/core/cache"
	"github.com/unifiedui/school-service/internal/core/docdb"
	"github.com/unifiedui/school-service/internal/domain/models"
)

const (
	// DefaultSummaryTTL is how long a computed summary stays cached.
	DefaultSummaryTTL = 3 * time.Minute

	// DefaultActivityLimit is the number of feed entries returned when none is requested.
	DefaultActivityLimit = 20

	// ActivityFeedTTL is refreshed on every new entry; idle feeds expire.
	ActivityFeedTTL = 24 * time.Hour

	// InvalidationChannel carries an InvalidationEvent for every tenant invalidation.
	InvalidationChannel = "cache:invalidation"

	// ActiveTenantsKey is the set of tenants that have been invalidated at least once.
	ActiveTenantsKey = "tenants:active"
)

// SummaryKey returns the cache key of a tenant's dashboard summary.
func SummaryKey(tenantID string) string {
	return fmt.Sprintf("tenant:%s:dashboard", tenantID)
}

// TenantPattern matches every cache key owned by a tenant.
func TenantPattern(tenantID string) string {
	return fmt.Sprintf("tenant:%s:*", tenantID)
}

// ActivityKey returns the list key of a tenant's activity feed.
// It lives outside the tenant namespace so invalidation keeps the feed.
func ActivityKey(tenantID string) string {
	return fmt.Sprintf("activity:%s", tenantID)
}

// Service provides tenant dashboards and activity feeds.
type Service interface {
	// GetSummary returns the tenant's dashboard summary, computing it on a cache miss.
	GetSummary(ctx context.Context, tenantID string) (*models.DashboardSummary, error)

	// GetSummaries returns summaries aligned with tenantIDs, computing and
	// writing back only the misses.
	GetSummaries(ctx context.Context, tenantIDs []string) ([]*models.DashboardSummary, error)

	// Invalidate drops every cached entry of the tenant and announces it.
	Invalidate(ctx context.Context, tenantID, reason string)

	// ActiveTenants lists tenants known to the invalidation registry.
	ActiveTenants(ctx context.Context) []string

	// RecordActivity prepends an entry to the tenant's activity feed.
	RecordActivity(ctx context.Context, activity *models.Activity)

	// RecentActivity returns up to limit feed entries, newest first.
	RecentActivity(ctx context.Context, tenantID string, limit int64) []models.Activity
}

// Config holds the configuration for the dashboard service.
type Config struct {
	CacheClient cache.Client
	Students    docdb.StudentsCollection
	TTL         time.Duration
	Logger      zerolog.Logger
}

type service struct {
	cacheClient cache.Client
	students    docdb.StudentsCollection
	ttl         time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewService creates a new dashboard service.
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

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}

	return &service{
		cacheClient: cfg.CacheClient,
		students:    cfg.Students,
		ttl:         ttl,
		logger:      cfg.Logger,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) GetSummary(ctx context.Context, tenantID string) (*models.DashboardSummary, error) {
	key := SummaryKey(tenantID)

	if summary, ok := cache.GetAs[models.DashboardSummary](ctx, s.cacheClient, key); ok {
		return &summary, nil
	}

	summary, err := s.students.Summarize(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard for tenant %s: %w", tenantID, err)
	}

	s.cacheClient.Set(ctx, key, summary, s.ttl)
	return summary, nil
}

func (s *service) GetSummaries(ctx context.Context, tenantIDs []string) ([]*models.DashboardSummary, error) {
	if len(tenantIDs) == 0 {
		return []*models.DashboardSummary{}, nil
	}

	keys := make([]string, len(tenantIDs))
	for i, id := range tenantIDs {
		keys[i] = SummaryKey(id)
	}

	summaries := cache.MGetAs[models.DashboardSummary](ctx, s.cacheClient, keys...)

	missing := make(map[string]any)
	for i, summary := range summaries {
		if summary != nil {
			continue
		}
		computed, err := s.students.Summarize(ctx, tenantIDs[i])
		if err != nil {
			return nil, fmt.Errorf("failed to compute dashboard for tenant %s: %w", tenantIDs[i], err)
		}
		summaries[i] = computed
		missing[keys[i]] = computed
	}

	if len(missing) > 0 {
		s.cacheClient.MSet(ctx, missing, s.ttl)
		s.logger.Debug().
			Int("requested", len(tenantIDs)).
			Int("computed", len(missing)).
			Msg("dashboard summaries refreshed")
	}

	return summaries, nil
}

func (s *service) Invalidate(ctx context.Context, tenantID, reason string) {
	pattern := TenantPattern(tenantID)
	s.cacheClient.DeletePattern(ctx, pattern)
	s.cacheClient.SAdd(ctx, ActiveTenantsKey, tenantID)

	event := models.InvalidationEvent{
		TenantID: tenantID,
		Pattern:  pattern,
		Reason:   reason,
		At:       s.now(),
	}
	receivers := s.cacheClient.Publish(ctx, InvalidationChannel, event)

	s.logger.Info().
		Str("tenant_id", tenantID).
		Str("reason", reason).
		Int64("receivers", receivers).
		Msg("tenant cache invalidated")
}

func (s *service) ActiveTenants(ctx context.Context) []string {
	return cache.Decode[string](s.cacheClient.SMembers(ctx, ActiveTenantsKey))
}

func (s *service) RecordActivity(ctx context.Context, activity *models.Activity) {
	if activity == nil || activity.TenantID == "" {
		return
	}
	if activity.OccurredAt.IsZero() {
		activity.OccurredAt = s.now()
	}

	key := ActivityKey(activity.TenantID)
	if s.cacheClient.LPush(ctx, key, activity) > 0 {
		s.cacheClient.Expire(ctx, key, ActivityFeedTTL)
	}
}

func (s *service) RecentActivity(ctx context.Context, tenantID string, limit int64) []models.Activity {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return cache.Decode[models.Activity](s.cacheClient.LRange(ctx, ActivityKey(tenantID), 0, limit-1))
}
