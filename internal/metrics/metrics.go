package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the scrape pipeline. All methods
// are nil-safe so components can run without a registry wired in.
type Metrics struct {
	Registry            *prometheus.Registry
	RequestsTotal       *prometheus.CounterVec
	RequestDuration     prometheus.Histogram
	TokenRetriesTotal   prometheus.Counter
	QuotaBackoffsTotal  prometheus.Counter
	CandidatesTotal     prometheus.Counter
	LeadsQualifiedTotal prometheus.Counter
	AreasTotal          *prometheus.CounterVec
	DetailFailuresTotal prometheus.Counter
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadscout_requests_total",
			Help: "Total upstream API requests issued, by phase.",
		},
		[]string{"phase"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leadscout_request_duration_seconds",
			Help:    "Upstream API request latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	tokenRetries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadscout_page_token_retries_total",
			Help: "Total retries of a not-yet-ready pagination token.",
		},
	)
	quotaBackoffs := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadscout_quota_backoffs_total",
			Help: "Total cooling-off delays after a quota-exceeded status.",
		},
	)
	candidates := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadscout_candidates_total",
			Help: "Total unique place candidates collected.",
		},
	)
	leadsQualified := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadscout_leads_qualified_total",
			Help: "Total leads that passed qualification and were persisted.",
		},
	)
	areas := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadscout_areas_total",
			Help: "Total areas processed, by outcome.",
		},
		[]string{"outcome"},
	)
	detailFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadscout_detail_failures_total",
			Help: "Total per-candidate detail fetches that failed and were skipped.",
		},
	)

	registry.MustRegister(requests, requestDuration, tokenRetries, quotaBackoffs,
		candidates, leadsQualified, areas, detailFailures)

	return &Metrics{
		Registry:            registry,
		RequestsTotal:       requests,
		RequestDuration:     requestDuration,
		TokenRetriesTotal:   tokenRetries,
		QuotaBackoffsTotal:  quotaBackoffs,
		CandidatesTotal:     candidates,
		LeadsQualifiedTotal: leadsQualified,
		AreasTotal:          areas,
		DetailFailuresTotal: detailFailures,
	}
}

// IncRequest increments the requests counter for a phase.
func (m *Metrics) IncRequest(phase string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(phase).Inc()
}

// ObserveDuration records an upstream request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncTokenRetry increments the pagination token retry counter.
func (m *Metrics) IncTokenRetry() {
	if m == nil {
		return
	}
	m.TokenRetriesTotal.Inc()
}

// IncQuotaBackoff increments the quota cooling-off counter.
func (m *Metrics) IncQuotaBackoff() {
	if m == nil {
		return
	}
	m.QuotaBackoffsTotal.Inc()
}

// IncCandidates adds to the collected candidate counter.
func (m *Metrics) IncCandidates(n int) {
	if m == nil {
		return
	}
	m.CandidatesTotal.Add(float64(n))
}

// IncLeadQualified increments the qualified lead counter.
func (m *Metrics) IncLeadQualified() {
	if m == nil {
		return
	}
	m.LeadsQualifiedTotal.Inc()
}

// IncArea increments the processed area counter for an outcome label.
func (m *Metrics) IncArea(outcome string) {
	if m == nil {
		return
	}
	m.AreasTotal.WithLabelValues(outcome).Inc()
}

// IncDetailFailure increments the skipped-candidate counter.
func (m *Metrics) IncDetailFailure() {
	if m == nil {
		return
	}
	m.DetailFailuresTotal.Inc()
}
