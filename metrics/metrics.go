package metrics

import (
	"strconv"
	"time"

	kitmetrics "github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// prometheusMetrics is a struct for Prometheus metrics
type prometheusMetrics struct {
	reqCountMetric    kitmetrics.Counter   // requests count metric
	reqDurationMetric kitmetrics.Histogram // requests duration metric
	errRespMetric     kitmetrics.Counter   // error responses count metric
}

// common labels for metrics: method - method name, res - result of method execution (success/error)
var labelNames = []string{"method", "res"}

// labels for error responses: status - HTTP status of response
var errRespLabelNames = []string{"status"}

// getMetricLabelValues returns array of label names & values for metrics
func getMetricLabelValues(methodName string, err error) []string {
	res := "success"
	if err != nil {
		res = "error"
	}
	return []string{"method", methodName, "res", res}
}

// init initializes Prometheus metrics using namespace & subsystem
func (pm *prometheusMetrics) init(namespace, subsystem string) {
	pm.reqCountMetric = kitprometheus.NewCounterFrom(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_count",
		Help:      "Count of requests",
	}, labelNames)

	pm.reqDurationMetric = kitprometheus.NewSummaryFrom(prometheus.SummaryOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_ms",
		Help:      "Requests execution time in milliseconds",
	}, labelNames)

	pm.errRespMetric = kitprometheus.NewCounterFrom(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "error_response_count",
		Help:      "Count of error responses by HTTP status",
	}, errRespLabelNames)
}

// initNop initializes unregistered Prometheus metrics. Useful for tests
func (pm *prometheusMetrics) initNop() {
	pm.reqCountMetric = kitprometheus.NewCounter(prometheus.NewCounterVec(prometheus.CounterOpts{Name: "nop_request_count"}, labelNames))
	pm.reqDurationMetric = kitprometheus.NewSummary(prometheus.NewSummaryVec(prometheus.SummaryOpts{Name: "nop_request_duration_ms"}, labelNames))
	pm.errRespMetric = kitprometheus.NewCounter(prometheus.NewCounterVec(prometheus.CounterOpts{Name: "nop_error_response_count"}, errRespLabelNames))
}

// collect collects Prometheus metrics by executed method.
// If metrics are not initialized, method is just executed.
func (pm *prometheusMetrics) collect(name string, method func() error) {
	if pm.reqCountMetric == nil {
		_ = method()
		return
	}

	var err error
	defer func(begin time.Time) {
		lvs := getMetricLabelValues(name, err)
		pm.reqCountMetric.With(lvs...).Add(1)
		pm.reqDurationMetric.With(lvs...).Observe(float64(time.Since(begin).Milliseconds()))
	}(time.Now())

	err = method()
}

// countErrorResponse increments counter of error responses with HTTP status
func (pm *prometheusMetrics) countErrorResponse(status int) {
	if pm.errRespMetric == nil {
		return
	}
	pm.errRespMetric.With("status", strconv.Itoa(status)).Add(1)
}
