package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Options configures the connection pool.
type Options struct {
	ConnectionString string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	QueryTimeout     time.Duration
}

// DBService owns the process-wide connection pool. It is opened once at
// startup and closed on shutdown; repositories receive it explicitly.
type DBService struct {
	DB           *sqlx.DB
	queryTimeout time.Duration
	log          logrus.FieldLogger
	monitor      *cron.Cron
}

// NewDBService opens the pool and verifies it with a ping.
func NewDBService(ctx context.Context, opts Options, log logrus.FieldLogger) (*DBService, error) {
	if opts.ConnectionString == "" {
		return nil, fmt.Errorf("missing DB_CONNECTION_STRING in environment variables")
	}

	db, err := sqlx.Open("pgx", opts.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %w", err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to the database: %w", err)
	}

	return NewDBServiceFromDB(db, opts.QueryTimeout, log), nil
}

// NewDBServiceFromDB wraps an already opened pool.
func NewDBServiceFromDB(db *sqlx.DB, queryTimeout time.Duration, log logrus.FieldLogger) *DBService {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &DBService{
		DB:           db,
		queryTimeout: queryTimeout,
		log:          log.WithField("component", "storage"),
	}
}

// WithTimeout bounds a single statement. Callers must invoke the returned cancel.
func (s *DBService) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// Health checks the health of the database connection by pinging the database.
func (s *DBService) Health(ctx context.Context) map[string]string {
	stats := make(map[string]string)

	ctx, cancel := s.WithTimeout(ctx)
	defer cancel()

	if err := s.DB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	dbStats := s.DB.Stats()
	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["open_connections"] = fmt.Sprint(dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprint(dbStats.InUse)
	stats["idle"] = fmt.Sprint(dbStats.Idle)
	return stats
}

// StartPoolMonitor logs pool statistics on the given cron schedule,
// e.g. "@every 1m".
func (s *DBService) StartPoolMonitor(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, s.logPoolStats)
	if err != nil {
		return fmt.Errorf("schedule pool monitor: %w", err)
	}
	c.Start()
	s.monitor = c
	return nil
}

func (s *DBService) logPoolStats() {
	st := s.DB.Stats()
	s.log.WithFields(logrus.Fields{
		"open_connections": st.OpenConnections,
		"in_use":           st.InUse,
		"idle":             st.Idle,
		"wait_count":       st.WaitCount,
		"wait_duration_ms": st.WaitDuration.Milliseconds(),
	}).Info("Connection pool stats")
}

// Close stops the monitor and drains the pool.
func (s *DBService) Close() error {
	if s.monitor != nil {
		<-s.monitor.Stop().Done()
	}
	s.log.Info("Closing database connection")
	return s.DB.Close()
}
