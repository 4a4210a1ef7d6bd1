// Package metrics defines and registers all custom Prometheus metrics for the
// calorie tracking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "calorie"

// Namespace is shared with the HTTP middleware metrics.
const Namespace = namespace

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login calls.
// Labels:
//   - operation: "register" or "login"
//   - result: "success" or the error class (e.g. "conflict", "invalid_credentials")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// RateLimitRejectedTotal counts requests refused by the rate limiter.
var RateLimitRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejected_total",
		Help:      "Total number of requests rejected with 429.",
	},
)

// ── Intake metrics ────────────────────────────────────────────────────────────

// IntakeEntriesRecordedTotal counts accepted {calories, date} entries.
var IntakeEntriesRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "intake_entries_recorded_total",
		Help:      "Total number of calorie intake entries recorded.",
	},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsGeneratedTotal counts stored reports.
// Label:
//   - format: "pdf" or "csv"
var ReportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of reports generated, by format.",
	},
	[]string{"format"},
)

// ReportGenerationDuration measures query, render and store time of a report.
// Label:
//   - format: "pdf" or "csv"
var ReportGenerationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_generation_duration_seconds",
		Help:      "Duration of report generation from ledger query to storage.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"format"},
)

// ReportDownloadsTotal counts download link requests.
// Labels:
//   - format: "pdf" or "csv"
//   - result: "ok", "invalid_link", "not_found" or "error"
var ReportDownloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_downloads_total",
		Help:      "Total number of report downloads, by format and result.",
	},
	[]string{"format", "result"},
)
