package domain

import (
	"fmt"
	"strings"
)

// Side is the direction of the reported operation.
type Side int

const (
	SideUnknown Side = iota
	SideBuy
	SideSell
)

// String returns the string representation of Side
func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Aggressor identifies which side crossed the spread to initiate the trade.
// Some reports carry no aggressor information.
type Aggressor int

const (
	AggressorNone Aggressor = iota
	AggressorBuyer
	AggressorSeller
)

// String returns the string representation of Aggressor
func (a Aggressor) String() string {
	switch a {
	case AggressorBuyer:
		return "BUYER"
	case AggressorSeller:
		return "SELLER"
	default:
		return "NONE"
	}
}

// RLPTag marks a trade filled against a resting liquidity provider,
// attributed to a side by the most recently observed aggressor direction.
type RLPTag int

const (
	RLPNone RLPTag = iota
	RLPBuyer
	RLPSeller
	RLPUndefined
)

// String returns the string representation of RLPTag
func (t RLPTag) String() string {
	switch t {
	case RLPBuyer:
		return "RLP_BUYER"
	case RLPSeller:
		return "RLP_SELLER"
	case RLPUndefined:
		return "RLP_UNDEFINED"
	default:
		return "NONE"
	}
}

// TradeRecord is one structurally parsed trade report. It is transient:
// created per feed message, consumed once by the classifier.
type TradeRecord struct {
	Instrument   string
	Op           Side
	RawTime      string // 9-digit time of day, HHMMSSmmm
	Price        int64  // integer ticks
	Qty          int64
	BuyerBroker  string
	SellerBroker string
	SeqID        string
	Condition    string
	ExtCondition string
	Aggressor    Aggressor
}

// ClassifiedTrade is a TradeRecord plus the classification result and the
// net RLP exposure snapshot taken at classification time.
type ClassifiedTrade struct {
	TradeRecord
	Tag    RLPTag
	NetRLP int64
}

// TradeRow is the persisted form of a classified trade. Rows are
// append-only and never mutated after insert.
type TradeRow struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Instrument   string `gorm:"index" json:"instrument"`
	Operation    string `json:"operation"`
	Clock        string `gorm:"index" json:"clock"` // HH:MM:SS.mmm
	Price        int64  `json:"price"`
	Qty          int64  `json:"qty"`
	BuyerBroker  string `json:"buyer_broker"`
	SellerBroker string `json:"seller_broker"`
	Aggressor    string `json:"aggressor"`
	RLPTag       string `json:"rlp_tag"`
	NetRLP       int64  `json:"net_rlp"`
	SeqID        string `json:"seq_id"`
	Condition    string `json:"condition"`
}

// TableName sets the trades table name explicitly
func (TradeRow) TableName() string { return "trades" }

// ToRow maps a classified trade to its persisted form, reformatting the
// raw feed clock on the way.
func (c ClassifiedTrade) ToRow() TradeRow {
	return TradeRow{
		Instrument:   c.Instrument,
		Operation:    c.Op.String(),
		Clock:        FormatClock(c.RawTime),
		Price:        c.Price,
		Qty:          c.Qty,
		BuyerBroker:  c.BuyerBroker,
		SellerBroker: c.SellerBroker,
		Aggressor:    c.Aggressor.String(),
		RLPTag:       c.Tag.String(),
		NetRLP:       c.NetRLP,
		SeqID:        c.SeqID,
		Condition:    c.Condition,
	}
}

// FormatClock converts the feed's 9-digit zero-padded time of day into
// HH:MM:SS.mmm. Shorter inputs are left-padded with zeros first.
func FormatClock(raw string) string {
	if len(raw) < 9 {
		raw = strings.Repeat("0", 9-len(raw)) + raw
	}
	return fmt.Sprintf("%s:%s:%s.%s", raw[:2], raw[2:4], raw[4:6], raw[6:9])
}
