// metrics содержит Prometheus-метрики showcase-сервиса.
// Все методы безопасны для nil-получателя: сервис без метрик просто их не пишет.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "showcase"

// Metrics — набор коллекторов сервиса.
type Metrics struct {
	sourceAttempts *prometheus.CounterVec
	sourceDuration *prometheus.HistogramVec
	widgetLoads    *prometheus.CounterVec
	contacts       *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New создаёт коллекторы и регистрирует их в reg.
// reg == nil означает prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		sourceAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_attempts_total",
			Help:      "Попытки источников видео по исходу.",
		}, []string{"source", "outcome"}),
		sourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_duration_seconds",
			Help:      "Длительность одной попытки источника.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		widgetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "widget_loads_total",
			Help:      "Загрузки виджета по источнику результата (failed при панели ошибки).",
		}, []string{"source"}),
		contacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Отправки контактной формы по исходу.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP-запросы по маршруту и статусу.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность HTTP-запросов.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.sourceAttempts,
		m.sourceDuration,
		m.widgetLoads,
		m.contacts,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// ObserveSource фиксирует одну попытку источника.
func (m *Metrics) ObserveSource(source, outcome string, took time.Duration) {
	if m == nil {
		return
	}

	m.sourceAttempts.WithLabelValues(source, outcome).Inc()
	m.sourceDuration.WithLabelValues(source).Observe(took.Seconds())
}

// WidgetLoaded фиксирует итог прохода цепочки.
func (m *Metrics) WidgetLoaded(source string) {
	if m == nil {
		return
	}

	if source == "" {
		source = "failed"
	}

	m.widgetLoads.WithLabelValues(source).Inc()
}

// ContactSubmitted фиксирует исход отправки формы.
func (m *Metrics) ContactSubmitted(outcome string) {
	if m == nil {
		return
	}

	m.contacts.WithLabelValues(outcome).Inc()
}

// ObserveHTTP фиксирует завершённый HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route string, status int, took time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(took.Seconds())
}
