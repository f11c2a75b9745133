package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// OrgStatsStore defines the store queries backing organization metrics.
type OrgStatsStore interface {
	CountOrganizations(ctx context.Context) (int, error)
}

// OrgCollector exposes a gauge of provisioned organizations. The store
// is queried at scrape time, with a short-lived cache so scrapes do not
// hammer the database.
type OrgCollector struct {
	store  OrgStatsStore
	logger zerolog.Logger
	desc   *prometheus.Desc

	mu            sync.Mutex
	lastCollected time.Time
	cached        int
	cacheExpiry   time.Duration
}

// NewOrgCollector creates a collector backed by the given store.
func NewOrgCollector(store OrgStatsStore, logger zerolog.Logger) *OrgCollector {
	return &OrgCollector{
		store:  store,
		logger: logger.With().Str("component", "org_collector").Logger(),
		desc: prometheus.NewDesc(
			prometheus.BuildFQName("helpdesk", "", "organizations_total"),
			"Number of provisioned organizations",
			nil, nil,
		),
		cacheExpiry: 15 * time.Second,
	}
}

// Describe implements prometheus.Collector.
func (c *OrgCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector. On a store error the last
// known value is reported until the store recovers.
func (c *OrgCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Since(c.lastCollected) >= c.cacheExpiry {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		count, err := c.store.CountOrganizations(ctx)
		cancel()
		if err != nil {
			c.logger.Warn().Err(err).Msg("failed to count organizations")
		} else {
			c.cached = count
			c.lastCollected = time.Now()
		}
	}

	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.cached))
}
