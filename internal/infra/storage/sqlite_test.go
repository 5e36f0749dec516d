package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"rlpmon/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *Storage {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&domain.TradeRow{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return &Storage{db: db, attempts: insertAttempts, delay: 0}
}

func classified(seq string, price, qty, netRLP int64, tag domain.RLPTag) domain.ClassifiedTrade {
	return domain.ClassifiedTrade{
		TradeRecord: domain.TradeRecord{
			Instrument:   "WINM25",
			Op:           domain.SideBuy,
			RawTime:      "103055123",
			Price:        price,
			Qty:          qty,
			BuyerBroker:  "3",
			SellerBroker: "630",
			SeqID:        seq,
			Condition:    "2",
			Aggressor:    domain.AggressorBuyer,
		},
		Tag:    tag,
		NetRLP: netRLP,
	}
}

func TestInsertTradeAndReadBack(t *testing.T) {
	s := setupTestDB(t)

	ct := classified("10001", 128500, 5, 5, domain.RLPBuyer)
	if err := s.InsertTrade(context.Background(), ct); err != nil {
		t.Fatalf("InsertTrade failed: %v", err)
	}

	rows, err := s.AllTrades()
	if err != nil {
		t.Fatalf("AllTrades failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.ID == 0 {
		t.Error("row should have an auto-assigned id")
	}
	if row.Clock != "10:30:55.123" {
		t.Errorf("Clock = %q, want formatted time", row.Clock)
	}
	if row.RLPTag != "RLP_BUYER" || row.NetRLP != 5 {
		t.Errorf("classification columns mismatch: %+v", row)
	}
}

func TestInsertTrade_AppendOnlyOrdering(t *testing.T) {
	s := setupTestDB(t)

	for i := int64(1); i <= 5; i++ {
		ct := classified(fmt.Sprintf("1000%d", i), 128000+i, i, i, domain.RLPNone)
		if err := s.InsertTrade(context.Background(), ct); err != nil {
			t.Fatalf("InsertTrade %d failed: %v", i, err)
		}
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 5 {
		t.Fatalf("Count = %d, want 5", n)
	}

	rows, _ := s.AllTrades()
	for i := 1; i < len(rows); i++ {
		if rows[i].ID <= rows[i-1].ID {
			t.Errorf("ids not insertion-ordered: %d then %d", rows[i-1].ID, rows[i].ID)
		}
	}
}

func TestTradesBetween(t *testing.T) {
	s := setupTestDB(t)

	times := []string{"093000000", "103000000", "113000000"}
	for i, rt := range times {
		ct := classified("s", 100, 1, 0, domain.RLPNone)
		ct.RawTime = rt
		ct.SeqID = times[i]
		if err := s.InsertTrade(context.Background(), ct); err != nil {
			t.Fatalf("InsertTrade failed: %v", err)
		}
	}

	rows, err := s.TradesBetween("10:00:00.000", "11:00:00.000")
	if err != nil {
		t.Fatalf("TradesBetween failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Clock != "10:30:00.000" {
		t.Errorf("Clock = %q, want 10:30:00.000", rows[0].Clock)
	}
}

func TestClassify_BusyVsPermanent(t *testing.T) {
	busy := classify("insert", errBusy{})
	if !domain.IsRetriable(busy) {
		t.Error("locked database should classify as retriable")
	}

	perm := classify("insert", errPerm{})
	if domain.IsRetriable(perm) {
		t.Error("unrelated storage error must not be retriable")
	}
}

type errBusy struct{}

func (errBusy) Error() string { return "database is locked (5) (SQLITE_BUSY)" }

type errPerm struct{}

func (errPerm) Error() string { return "no such table: trades" }
