package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rlpmon/internal/domain"
	"rlpmon/internal/infra"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// insertAttempts bounds the busy-retry loop. After this many failed
	// attempts the contention is surfaced as fatal.
	insertAttempts = 10
	// insertRetryDelay is the fixed wait between contended attempts.
	insertRetryDelay = 2 * time.Second
)

// Storage appends classified trades to SQLite and serves the read-side
// time-range query. Rows are append-only; one transaction per insert.
type Storage struct {
	db       *gorm.DB
	attempts int
	delay    time.Duration
}

// Open connects to the SQLite file at path, creating the directory and
// migrating the trades table if needed.
func Open(path string) (*Storage, error) {
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Pure Go SQLite
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.TradeRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db, attempts: insertAttempts, delay: insertRetryDelay}, nil
}

// classify maps a driver error into the domain taxonomy. SQLite reports
// lock contention as SQLITE_BUSY / "database is locked".
func classify(op string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY") {
		return domain.NewBusyStorageError(op, err)
	}
	return domain.NewStorageError(op, err)
}

// InsertTrade appends exactly one row for the classified trade, committing
// before returning. Contention is retried with a fixed delay up to the
// attempt bound; any other storage error propagates immediately.
func (s *Storage) InsertTrade(ctx context.Context, ct domain.ClassifiedTrade) error {
	row := ct.ToRow()
	return infra.Retry(ctx, s.attempts, infra.FixedBackoff(s.delay), func() error {
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			serr := classify("insert", err)
			if domain.IsRetriable(serr) {
				infra.GlobalMetrics.RecordStorageRetry()
			}
			return serr
		}
		return nil
	})
}

// TradesBetween returns rows whose formatted clock falls in [from, to],
// in insertion order. Bounds use the HH:MM:SS.mmm form.
func (s *Storage) TradesBetween(from, to string) ([]domain.TradeRow, error) {
	var rows []domain.TradeRow
	err := s.db.Where("clock BETWEEN ? AND ?", from, to).Order("id").Find(&rows).Error
	if err != nil {
		return nil, classify("query", err)
	}
	return rows, nil
}

// AllTrades returns every persisted row in insertion order.
func (s *Storage) AllTrades() ([]domain.TradeRow, error) {
	var rows []domain.TradeRow
	err := s.db.Order("id").Find(&rows).Error
	if err != nil {
		return nil, classify("query", err)
	}
	return rows, nil
}

// Count returns the number of persisted rows.
func (s *Storage) Count() (int64, error) {
	var n int64
	err := s.db.Model(&domain.TradeRow{}).Count(&n).Error
	if err != nil {
		return 0, classify("count", err)
	}
	return n, nil
}
