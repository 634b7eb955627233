package infra

import (
	"net/http"

	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the Prometheus collectors of the POS. Each instance owns its
// registry so tests can build as many as they like. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec

	TransactionsTotal prometheus.Counter
	SalesAmount       prometheus.Counter
	ChangeGiven       prometheus.Counter
	PaymentsByMethod  *prometheus.CounterVec
	SettlementsTotal  *prometheus.CounterVec
	ReceiptJobs       *prometheus.CounterVec
	RegisterOpen      prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		TransactionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Number of finalized transactions.",
		}),
		SalesAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_amount_total",
			Help:      "Sum of grand totals of finalized transactions.",
		}),
		ChangeGiven: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_given_total",
			Help:      "Sum of change returned to customers.",
		}),
		PaymentsByMethod: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_amount_total",
			Help:      "Net amount received per payment method.",
		}, []string{"method"}),
		SettlementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Settlement outcomes (opened, finalized, abandoned).",
		}, []string{"outcome"}),
		ReceiptJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_jobs_total",
			Help:      "Receipt job outcomes.",
		}, []string{"result"}),
		RegisterOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "register_open",
			Help:      "1 while the cash register is open.",
		}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ReqTotal, m.ReqDur,
		m.TransactionsTotal, m.SalesAmount, m.ChangeGiven, m.PaymentsByMethod,
		m.SettlementsTotal, m.ReceiptJobs, m.RegisterOpen,
	)
	return m
}

// Registry exposes the underlying registry (tests gather from it).
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) ObserveTransaction(tx settlement.Transaction) {
	if m == nil {
		return
	}
	m.TransactionsTotal.Inc()
	total, _ := tx.Total().Float64()
	m.SalesAmount.Add(total)
	change, _ := tx.ChangeDue.Float64()
	m.ChangeGiven.Add(change)
	for method, amount := range tx.ByMethod() {
		if v, _ := amount.Float64(); v > 0 {
			m.PaymentsByMethod.WithLabelValues(string(method)).Add(v)
		}
	}
}

func (m *Metrics) ObserveSettlement(outcome string) {
	if m == nil {
		return
	}
	m.SettlementsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveReceipt(result string) {
	if m == nil {
		return
	}
	m.ReceiptJobs.WithLabelValues(result).Inc()
}

func (m *Metrics) SetRegisterOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.RegisterOpen.Set(1)
		return
	}
	m.RegisterOpen.Set(0)
}

func (m *Metrics) ObserveRequest(method, route, status string, millis float64) {
	if m == nil {
		return
	}
	m.ReqTotal.WithLabelValues(method, route, status).Inc()
	m.ReqDur.WithLabelValues(method, route).Observe(millis)
}
