package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "rollcall_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	ingestRequests *prometheus.CounterVec
	ingestErrors   *prometheus.CounterVec
	ingestLatency  *prometheus.HistogramVec

	billingRunTotal   *prometheus.CounterVec
	billingRunLatency *prometheus.HistogramVec

	reportLineItems prometheus.Gauge
	reportRevenue   prometheus.Gauge

	reportExportTotal *prometheus.CounterVec
)

// Init registers the service metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		ingestRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ingest_requests_total",
				Help: "Total attendance ingest requests by result",
			},
			[]string{"result"},
		)
		ingestErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ingest_errors_total",
				Help: "Total attendance ingest errors by reason",
			},
			[]string{"reason"},
		)
		ingestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ingest_latency_seconds",
				Help:    "Attendance ingest latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		billingRunTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "billing_runs_total",
				Help: "Total billing report runs by result",
			},
			[]string{"result"},
		)
		billingRunLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "billing_run_latency_seconds",
				Help:    "Billing report run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		reportLineItems = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "report_line_items",
				Help: "Line items in the most recent billing report",
			},
		)
		reportRevenue = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "report_revenue_dollars",
				Help: "Total revenue in the most recent billing report",
			},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_exports_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			ingestRequests,
			ingestErrors,
			ingestLatency,
			billingRunTotal,
			billingRunLatency,
			reportLineItems,
			reportRevenue,
			reportExportTotal,
		)
	})
}

// ObserveIngest records one ingest request.
func ObserveIngest(result string, duration time.Duration) {
	if ingestRequests == nil {
		return
	}
	ingestRequests.WithLabelValues(result).Inc()
	ingestLatency.WithLabelValues(result).Observe(duration.Seconds())
}

// IncIngestError counts an ingest error by reason.
func IncIngestError(reason string) {
	if ingestErrors == nil {
		return
	}
	ingestErrors.WithLabelValues(reason).Inc()
}

// ObserveBillingRun records one billing run.
func ObserveBillingRun(result string, duration time.Duration) {
	if billingRunTotal == nil {
		return
	}
	billingRunTotal.WithLabelValues(result).Inc()
	billingRunLatency.WithLabelValues(result).Observe(duration.Seconds())
}

// SetReportTotals publishes the totals of the latest report.
func SetReportTotals(lineItems int, revenue float64) {
	if reportLineItems == nil {
		return
	}
	reportLineItems.Set(float64(lineItems))
	reportRevenue.Set(revenue)
}

// IncReportExport counts a report export.
func IncReportExport(format, result string) {
	if reportExportTotal == nil {
		return
	}
	reportExportTotal.WithLabelValues(format, result).Inc()
}
