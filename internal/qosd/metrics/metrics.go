// Package metrics 定义 qosd 的 prometheus 指标
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "qosd"

var (
	// Registry qosd 自己的指标注册表，/metrics 只暴露这里的指标
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route, method and status code.",
		},
		[]string{"route", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution by route and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "events_total",
			Help:      "Total number of emitted notifications by event type and priority.",
		},
		[]string{"event_type", "priority"},
	)

	notificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "failures_total",
			Help:      "Total number of notifications the driver failed to deliver.",
		},
		[]string{"event_type"},
	)
)

var registerMetrics sync.Once

// Register 注册所有指标，可以重复调用
func Register(customCollectors ...prometheus.Collector) {
	registerMetrics.Do(func() {
		Registry.MustRegister(httpRequests)
		Registry.MustRegister(httpDuration)
		Registry.MustRegister(notifications)
		Registry.MustRegister(notificationFailures)
		for _, collector := range customCollectors {
			Registry.MustRegister(collector)
		}
	})
}

// RecordRequest 记录一次 HTTP 请求
func RecordRequest(route, method string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordNotification 记录一次通知
func RecordNotification(eventType, priority string) {
	notifications.WithLabelValues(eventType, priority).Inc()
}

// RecordNotificationFailure 记录一次通知投递失败
func RecordNotificationFailure(eventType string) {
	notificationFailures.WithLabelValues(eventType).Inc()
}
