// Package analytics computes the platform-wide counters and breakdowns shown
// on the admin dashboard. Every metric is an independent read-only query; a
// snapshot is advisory and carries no cross-table consistency guarantee.
package analytics

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/shareloop/backend/internal/metrics"
	"github.com/shareloop/backend/internal/models"
	"gorm.io/gorm"
)

// DefaultGrowthWindowDays is the lookback used when the caller doesn't ask
// for a specific window.
const DefaultGrowthWindowDays = 30

// Service runs the aggregate queries behind the admin dashboard
type Service struct {
	db           *gorm.DB
	queryTimeout time.Duration

	// overridable for deterministic day boundaries in tests
	now func() time.Time
}

// NewService creates an analytics service.
// queryTimeout bounds each individual query; a timed-out metric is reported
// unavailable the same way a failed one is.
func NewService(db *gorm.DB, queryTimeout time.Duration) *Service {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &Service{
		db:           db,
		queryTimeout: queryTimeout,
		now:          time.Now,
	}
}

// Snapshot is one non-atomic read of the dashboard counters.
// A nil counter means that metric was unavailable when the snapshot was
// taken; its name is listed in Unavailable. Counters are never substituted
// with stale or fabricated values.
type Snapshot struct {
	TotalUsers       *int64 `json:"total_users"`
	TotalItems       *int64 `json:"total_items"`
	TotalViews       *int64 `json:"total_views"`
	TotalFavorites   *int64 `json:"total_favorites"`
	TotalMessages    *int64 `json:"total_messages"`
	TotalReports     *int64 `json:"total_reports"`
	ActiveUsersToday *int64 `json:"active_users_today"`
	NewUsersToday    *int64 `json:"new_users_today"`
	NewItemsToday    *int64 `json:"new_items_today"`
	PendingReports   *int64 `json:"pending_reports"`

	Unavailable []string  `json:"unavailable,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// GrowthPoint is one day of the user growth series
type GrowthPoint struct {
	Date            string `json:"date"` // YYYY-MM-DD (UTC)
	NewUsers        int64  `json:"new_users"`
	CumulativeUsers int64  `json:"cumulative_users"`
}

// CategoryShare is one category's slice of the available items
type CategoryShare struct {
	Category   string  `json:"category"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"` // of all available items, 2 decimals
}

// Snapshot computes all dashboard counters concurrently. Each counter runs
// under its own timeout and fails independently; the returned snapshot always
// carries whatever succeeded.
func (s *Service) Snapshot(ctx context.Context) *Snapshot {
	startOfDay := s.startOfToday()

	snap := &Snapshot{GeneratedAt: s.now().UTC()}

	counters := []struct {
		name  string
		dest  **int64
		query func() *gorm.DB
	}{
		{"total_users", &snap.TotalUsers, func() *gorm.DB {
			return s.db.Model(&models.User{})
		}},
		{"total_items", &snap.TotalItems, func() *gorm.DB {
			return s.db.Model(&models.Item{})
		}},
		{"total_views", &snap.TotalViews, func() *gorm.DB {
			return s.db.Model(&models.ItemView{})
		}},
		{"total_favorites", &snap.TotalFavorites, func() *gorm.DB {
			return s.db.Model(&models.Favorite{})
		}},
		{"total_messages", &snap.TotalMessages, func() *gorm.DB {
			return s.db.Model(&models.Message{})
		}},
		{"total_reports", &snap.TotalReports, func() *gorm.DB {
			return s.db.Model(&models.Report{})
		}},
		{"active_users_today", &snap.ActiveUsersToday, func() *gorm.DB {
			return s.db.Model(&models.ItemView{}).Distinct("user_id").Where("created_at >= ?", startOfDay)
		}},
		{"new_users_today", &snap.NewUsersToday, func() *gorm.DB {
			return s.db.Model(&models.User{}).Where("created_at >= ?", startOfDay)
		}},
		{"new_items_today", &snap.NewItemsToday, func() *gorm.DB {
			return s.db.Model(&models.Item{}).Where("created_at >= ?", startOfDay)
		}},
		{"pending_reports", &snap.PendingReports, func() *gorm.DB {
			return s.db.Model(&models.Report{}).Where("status = ?", models.ReportStatusPending)
		}},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, c := range counters {
		wg.Add(1)
		go func(name string, dest **int64, query func() *gorm.DB) {
			defer wg.Done()

			n, err := s.count(ctx, name, query())
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				snap.Unavailable = append(snap.Unavailable, name)
				return
			}
			*dest = &n
		}(c.name, c.dest, c.query)
	}

	wg.Wait()
	return snap
}

// UserGrowth returns one row per calendar day over the lookback window, from
// today-windowDays through today inclusive, with that day's signup count and
// the running total of users up to and including that day. Days with no
// signups appear with a zero count; dates are contiguous.
// A zero or negative window is clamped to a single-day series for today.
func (s *Service) UserGrowth(ctx context.Context, windowDays int) ([]GrowthPoint, error) {
	if windowDays < 0 {
		windowDays = 0
	}

	today := s.startOfToday()
	start := today.AddDate(0, 0, -windowDays)

	// Users that existed before the window seed the cumulative total
	baseline, err := s.count(ctx, "user_growth", s.db.Model(&models.User{}).Where("created_at < ?", start))
	if err != nil {
		return nil, err
	}

	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	began := time.Now()
	// Pulls one timestamp per in-window signup and buckets in Go, which keeps
	// the date math portable across sqlite and postgres. TODO: switch to a
	// per-day GROUP BY count if signup volume ever makes this transfer hurt.
	var createdAt []time.Time
	err = s.db.WithContext(qctx).Model(&models.User{}).
		Where("created_at >= ?", start).
		Pluck("created_at", &createdAt).Error
	metrics.RecordAnalyticsQuery("user_growth", time.Since(began), err)
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]int64, windowDays+1)
	for _, ts := range createdAt {
		perDay[ts.UTC().Format("2006-01-02")]++
	}

	points := make([]GrowthPoint, 0, windowDays+1)
	cumulative := baseline
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		cumulative += perDay[date]
		points = append(points, GrowthPoint{
			Date:            date,
			NewUsers:        perDay[date],
			CumulativeUsers: cumulative,
		})
	}

	return points, nil
}

// CategoryDistribution returns available items grouped by category with each
// category's share of the total, largest first. With no available items it
// returns an empty slice; no division ever happens against a zero total.
func (s *Service) CategoryDistribution(ctx context.Context) ([]CategoryShare, error) {
	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	began := time.Now()
	var rows []CategoryShare
	err := s.db.WithContext(qctx).Model(&models.Item{}).
		Select("category, COUNT(*) AS count").
		Where("is_available = ?", true).
		Group("category").
		Order("count DESC").
		Order("category ASC").
		Scan(&rows).Error
	metrics.RecordAnalyticsQuery("category_distribution", time.Since(began), err)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, row := range rows {
		total += row.Count
	}
	if total == 0 {
		return []CategoryShare{}, nil
	}

	for i := range rows {
		rows[i].Percentage = math.Round(float64(rows[i].Count)/float64(total)*10000) / 100
	}

	return rows, nil
}

// count runs a single counting query under the service's timeout
func (s *Service) count(ctx context.Context, metric string, query *gorm.DB) (int64, error) {
	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	began := time.Now()
	var n int64
	err := query.WithContext(qctx).Count(&n).Error
	metrics.RecordAnalyticsQuery(metric, time.Since(began), err)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// startOfToday returns midnight UTC of the current calendar day
func (s *Service) startOfToday() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}
