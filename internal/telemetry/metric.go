package telemetry

import (
	"milkline/config"
	"milkline/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric struct
type Metric struct {
	HttpRequestsTotal        *prometheus.CounterVec
	HttpRequestDuration      *prometheus.HistogramVec
	DeliveriesRecordedTotal  *prometheus.CounterVec
	QuotaRejectionsTotal     *prometheus.CounterVec
	AllocationsVerifiedTotal *prometheus.CounterVec
	config                   *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    config.App.Name + "_" + string(core.MetricHttpRequestDuration),
				Help:    "Request handling duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		DeliveriesRecordedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricDeliveriesTotal),
				Help: "Recorded milk deliveries count",
			},
			labelNames(core.MetricLabelStatus),
		),
		QuotaRejectionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricQuotaRejectionsTotal),
				Help: "Deliveries rejected for insufficient remaining quota",
			},
			labelNames(core.MetricLabelReason),
		),
		AllocationsVerifiedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricAllocationsVerifiedTotal),
				Help: "Verified employee day allocations count",
			},
			labelNames(core.MetricLabelStatus),
		),
	}
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
