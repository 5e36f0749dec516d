package feed

import (
	"errors"
	"testing"

	"rlpmon/internal/domain"
)

const sampleTrade = "V:WINM25:C:103055123:128500:3:630:10:12345:2:A:RL"

func TestParse_TradeMessage(t *testing.T) {
	rec, err := Parse(sampleTrade)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if rec.Instrument != "WINM25" {
		t.Errorf("Instrument = %q, want WINM25", rec.Instrument)
	}
	if rec.Op != domain.SideBuy {
		t.Errorf("Op = %v, want SideBuy", rec.Op)
	}
	if rec.Price != 128500 {
		t.Errorf("Price = %d, want 128500", rec.Price)
	}
	if rec.Qty != 10 {
		t.Errorf("Qty = %d, want 10", rec.Qty)
	}
	if rec.BuyerBroker != "3" || rec.SellerBroker != "630" {
		t.Errorf("brokers = %q/%q, want 3/630", rec.BuyerBroker, rec.SellerBroker)
	}
	if rec.SeqID != "12345" || rec.Condition != "2" || rec.ExtCondition != "RL" {
		t.Errorf("trailing fields mismatch: %+v", rec)
	}
	if rec.Aggressor != domain.AggressorBuyer {
		t.Errorf("Aggressor = %v, want AggressorBuyer", rec.Aggressor)
	}
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name string
		msg  string
	}{
		{"wrong tag", "Q:WINM25:C:103055123:128500:3:630:10:12345:2:A:RL"},
		{"too few fields", "V:WINM25:C:103055123:128500:3:630:10:12345:2:A"},
		{"empty line", ""},
		{"control message", "invalid login."},
		{"non-numeric price", "V:WINM25:C:103055123:abc:3:630:10:12345:2:A:RL"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse(c.msg); !errors.Is(err, domain.ErrNotTradeMessage) {
				t.Errorf("Parse(%q) err = %v, want ErrNotTradeMessage", c.msg, err)
			}
		})
	}
}

func TestParse_QuantityDefaultsToZero(t *testing.T) {
	cases := []string{
		"V:WINM25:C:103055123:128500:3:630:x:12345:2:A:RL",
		"V:WINM25:C:103055123:128500:3:630::12345:2:A:RL",
		"V:WINM25:C:103055123:128500:3:630:-5:12345:2:A:RL", // sign is not a digit
	}
	for _, msg := range cases {
		rec, err := Parse(msg)
		if err != nil {
			t.Fatalf("Parse(%q) rejected: %v", msg, err)
		}
		if rec.Qty != 0 {
			t.Errorf("Parse(%q).Qty = %d, want 0", msg, rec.Qty)
		}
	}
}

func TestParse_UnknownSideAndAggressor(t *testing.T) {
	rec, err := Parse("V:WINM25:?:103055123:128500:3:630:10:12345:9:X:")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if rec.Op != domain.SideUnknown {
		t.Errorf("Op = %v, want SideUnknown", rec.Op)
	}
	if rec.Aggressor != domain.AggressorNone {
		t.Errorf("Aggressor = %v, want AggressorNone", rec.Aggressor)
	}
}

func TestIsFatalControl(t *testing.T) {
	for _, msg := range DefaultFatalMessages {
		if !IsFatalControl(msg, DefaultFatalMessages) {
			t.Errorf("IsFatalControl(%q) = false, want true", msg)
		}
	}

	if !IsFatalControl("INVALID LOGIN.", DefaultFatalMessages) {
		t.Error("matching should be case-insensitive")
	}

	if IsFatalControl(sampleTrade, DefaultFatalMessages) {
		t.Error("trade message misclassified as fatal control")
	}
	if IsFatalControl("connection reset by peer", DefaultFatalMessages) {
		t.Error("transient error text misclassified as fatal control")
	}
}
