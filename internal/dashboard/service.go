package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/vds-erp/vds-erp/internal/platform/db"
)

const (
	cacheKey = "dashboard:summary"
	cacheTTL = 5 * time.Minute
)

// Summary aggregates the headline numbers shown on the accountant dashboard.
// Display strings carry Indian-locale currency formatting.
type Summary struct {
	TotalExpenses         float64   `json:"totalExpenses"`
	ExpenseCount          int       `json:"expenseCount"`
	VendorCount           int       `json:"vendorCount"`
	AssetCount            int       `json:"assetCount"`
	AssetCurrentValue     float64   `json:"assetCurrentValue"`
	TotalExpensesDisplay  string    `json:"totalExpensesDisplay"`
	AssetCurrentValueDisp string    `json:"assetCurrentValueDisplay"`
	GeneratedAt           time.Time `json:"generatedAt"`
}

// Service computes the dashboard summary. Results are cached in Redis and
// concurrent cache misses are collapsed into a single computation.
type Service struct {
	pool   db.Querier
	cache  *redis.Client
	group  singleflight.Group
	locale *message.Printer
}

// NewService builds a Service instance. cache may be nil; reads then always
// hit the database.
func NewService(pool db.Querier, cache *redis.Client) *Service {
	return &Service{
		pool:   pool,
		cache:  cache,
		locale: message.NewPrinter(language.MustParse("en-IN")),
	}
}

// Summary returns the cached summary, computing and caching it on a miss.
// Cache failures degrade to direct reads.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached Summary
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		summary, err := s.compute(ctx)
		if err != nil {
			return Summary{}, err
		}
		if s.cache != nil {
			if raw, err := json.Marshal(summary); err == nil {
				s.cache.Set(ctx, cacheKey, raw, cacheTTL)
			}
		}
		return summary, nil
	})
	if err != nil {
		return Summary{}, err
	}
	return v.(Summary), nil
}

// Invalidate drops the cached summary so the next read recomputes.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Del(ctx, cacheKey)
	}
}

func (s *Service) compute(ctx context.Context) (Summary, error) {
	var summary Summary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.pool.QueryRow(gctx, `SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM expenses`).
			Scan(&summary.TotalExpenses, &summary.ExpenseCount)
	})
	g.Go(func() error {
		return s.pool.QueryRow(gctx, `SELECT COUNT(*) FROM vendors`).Scan(&summary.VendorCount)
	})
	g.Go(func() error {
		return s.pool.QueryRow(gctx, `SELECT COUNT(*), COALESCE(SUM(current_value), 0) FROM fixed_assets`).
			Scan(&summary.AssetCount, &summary.AssetCurrentValue)
	})
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("dashboard: compute summary: %w", err)
	}

	summary.TotalExpensesDisplay = s.formatINR(summary.TotalExpenses)
	summary.AssetCurrentValueDisp = s.formatINR(summary.AssetCurrentValue)
	summary.GeneratedAt = time.Now().UTC()
	return summary, nil
}

func (s *Service) formatINR(v float64) string {
	return s.locale.Sprintf("₹%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
