// Package metrics exposes the counters of a worker pool as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStats is implemented by *pool.Pool
type PoolStats interface {
	RunningWorkers() int64
	SubmittedTasks() uint64
	WaitingTasks() uint64
	SuccessfulTasks() uint64
	FailedTasks() uint64
	CompletedTasks() uint64
}

// PoolCollector is a prometheus.Collector reading the counters of a pool at scrape time
type PoolCollector struct {
	stats           PoolStats
	runningWorkers  *prometheus.Desc
	submittedTasks  *prometheus.Desc
	waitingTasks    *prometheus.Desc
	successfulTasks *prometheus.Desc
	failedTasks     *prometheus.Desc
	completedTasks  *prometheus.Desc
}

// NewPoolCollector creates a collector for stats whose metrics are named
// <namespace>_pool_<metric> and carry constLabels.
func NewPoolCollector(namespace string, stats PoolStats, constLabels prometheus.Labels) *PoolCollector {
	if stats == nil {
		panic("stats cannot be nil")
	}

	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", name), help, nil, constLabels)
	}

	return &PoolCollector{
		stats:           stats,
		runningWorkers:  desc("running_workers", "Number of running worker goroutines"),
		submittedTasks:  desc("submitted_tasks_total", "Number of tasks submitted since the pool was created"),
		waitingTasks:    desc("waiting_tasks", "Number of tasks waiting in the queue"),
		successfulTasks: desc("successful_tasks_total", "Number of tasks that completed successfully"),
		failedTasks:     desc("failed_tasks_total", "Number of tasks that panicked"),
		completedTasks:  desc("completed_tasks_total", "Number of tasks that completed, successfully or not"),
	}
}

// Describe implements prometheus.Collector
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.runningWorkers
	ch <- c.submittedTasks
	ch <- c.waitingTasks
	ch <- c.successfulTasks
	ch <- c.failedTasks
	ch <- c.completedTasks
}

// Collect implements prometheus.Collector
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.runningWorkers, prometheus.GaugeValue, float64(c.stats.RunningWorkers()))
	ch <- prometheus.MustNewConstMetric(c.submittedTasks, prometheus.CounterValue, float64(c.stats.SubmittedTasks()))
	ch <- prometheus.MustNewConstMetric(c.waitingTasks, prometheus.GaugeValue, float64(c.stats.WaitingTasks()))
	ch <- prometheus.MustNewConstMetric(c.successfulTasks, prometheus.CounterValue, float64(c.stats.SuccessfulTasks()))
	ch <- prometheus.MustNewConstMetric(c.failedTasks, prometheus.CounterValue, float64(c.stats.FailedTasks()))
	ch <- prometheus.MustNewConstMetric(c.completedTasks, prometheus.CounterValue, float64(c.stats.CompletedTasks()))
}

// RegisterPool creates a collector for stats and registers it with registerer
func RegisterPool(registerer prometheus.Registerer, namespace string, stats PoolStats) (*PoolCollector, error) {
	collector := NewPoolCollector(namespace, stats, nil)
	if err := registerer.Register(collector); err != nil {
		return nil, err
	}
	return collector, nil
}
