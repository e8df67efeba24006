package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ComplaintsFiled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "complaints_filed_total", Help: "Total complaints filed"},
	)
	ComplaintsResolved = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "complaints_resolved_total", Help: "Total complaints marked resolved"},
	)
	NotificationsSent = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "notifications_sent_total", Help: "Total resolution notifications delivered (email or push)"},
	)
	NotificationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "notifications_failed_total", Help: "Total resolution notification deliveries that failed"},
	)
)

func init() {
	prometheus.MustRegister(ComplaintsFiled, ComplaintsResolved, NotificationsSent, NotificationsFailed)
}
