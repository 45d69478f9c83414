package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry sendiri supaya test bisa membaca tanpa tabrakan dengan default registry.
var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iqro",
		Name:      "http_requests_total",
		Help:      "Jumlah request HTTP per route dan status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "iqro",
		Name:      "http_request_duration_seconds",
		Help:      "Durasi request HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	SetoranSubmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iqro",
		Name:      "setoran_submitted_total",
		Help:      "Setoran yang dikirim siswa per jenis.",
	}, []string{"jenis"})

	SetoranGraded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iqro",
		Name:      "setoran_graded_total",
		Help:      "Setoran yang dinilai guru per status.",
	}, []string{"status"})

	QuizAnswered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iqro",
		Name:      "quiz_answered_total",
		Help:      "Jawaban quiz per hasil.",
	}, []string{"correct"})

	RemindersSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "iqro",
		Name:      "daily_reminders_sent_total",
		Help:      "Notifikasi reminder setoran harian yang dibuat.",
	})
)

func init() {
	Registry.MustRegister(
		HTTPRequests,
		HTTPDuration,
		SetoranSubmitted,
		SetoranGraded,
		QuizAnswered,
		RemindersSent,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
}
