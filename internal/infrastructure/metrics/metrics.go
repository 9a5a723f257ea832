package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Roster ingestion metrics
	RowsIngested    prometheus.Counter
	RowsFailed      prometheus.Counter
	StudentsCreated prometheus.Counter
	StudentsUpdated prometheus.Counter
	BatchDuration   prometheus.Histogram

	// Ledger metrics
	EntriesAppended *prometheus.CounterVec
	EntryAmount     prometheus.Histogram
	EntriesPaid     prometheus.Counter

	// Expenditure metrics
	ExpendituresRecorded *prometheus.CounterVec
	ExpenditureAmount    prometheus.Histogram

	// Notification metrics
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Roster ingestion metrics
		RowsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusledger_roster_rows_ingested_total",
			Help: "Total number of roster rows processed",
		}),
		RowsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusledger_roster_rows_failed_total",
			Help: "Total number of roster rows that failed reconciliation",
		}),
		StudentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusledger_students_created_total",
			Help: "Total number of students created from roster uploads",
		}),
		StudentsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusledger_students_updated_total",
			Help: "Total number of students updated from roster uploads",
		}),
		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "campusledger_roster_batch_duration_seconds",
			Help:    "Duration of roster batch ingestion",
			Buckets: prometheus.DefBuckets,
		}),

		// Ledger metrics
		EntriesAppended: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusledger_entries_appended_total",
				Help: "Total ledger entries appended by kind",
			},
			[]string{"kind"},
		),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "campusledger_entry_amount",
			Help:    "Ledger entry amounts",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		}),
		EntriesPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusledger_entries_paid_total",
			Help: "Total ledger entries marked as paid",
		}),

		// Expenditure metrics
		ExpendituresRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusledger_expenditures_recorded_total",
				Help: "Total expenditures recorded by category",
			},
			[]string{"category"},
		),
		ExpenditureAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "campusledger_expenditure_amount",
			Help:    "Expenditure amounts",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		}),

		// Notification metrics
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusledger_notifications_sent_total",
			Help: "Total receipt notifications delivered",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusledger_notifications_failed_total",
			Help: "Total receipt notifications that failed to deliver",
		}),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campusledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "campusledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}
