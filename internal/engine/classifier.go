package engine

import (
	"strings"

	"rlpmon/internal/domain"
)

// Rules holds the classification configuration: which condition codes mark
// resting-liquidity fills and which seller brokers are on the watch-list.
type Rules struct {
	RLPConditionCode string
	RLPMarker        string
	FlaggedBrokers   []string
	HistoryCap       int
}

// Classifier applies the microstructure rules to one trade at a time. It
// owns the session state and must be driven from a single goroutine:
// each classification depends on state left behind by the trades before it.
type Classifier struct {
	rules   Rules
	flagged map[string]bool
	state   *domain.SessionState
}

// NewClassifier creates a classifier with fresh session state.
func NewClassifier(rules Rules) *Classifier {
	flagged := make(map[string]bool, len(rules.FlaggedBrokers))
	for _, b := range rules.FlaggedBrokers {
		flagged[b] = true
	}
	return &Classifier{
		rules:   rules,
		flagged: flagged,
		state:   domain.NewSessionState(rules.HistoryCap),
	}
}

// rlpEligible reports whether the trade was filled against resting
// liquidity, per the condition code or the extended-condition marker.
func (c *Classifier) rlpEligible(rec domain.TradeRecord) bool {
	if rec.Condition == c.rules.RLPConditionCode {
		return true
	}
	return c.rules.RLPMarker != "" && strings.Contains(rec.ExtCondition, c.rules.RLPMarker)
}

// Process classifies one trade in arrival order and mutates the session
// state. Valid records never fail here.
func (c *Classifier) Process(rec domain.TradeRecord) domain.ClassifiedTrade {
	s := c.state

	// The most recent known aggressor direction persists across
	// subsequent non-aggressive trades.
	switch rec.Aggressor {
	case domain.AggressorBuyer:
		s.LastAggressor = domain.AggressorBuyer
		s.LastPrice = rec.Price
	case domain.AggressorSeller:
		s.LastAggressor = domain.AggressorSeller
		s.LastPrice = rec.Price
	}

	tag := domain.RLPNone
	var adjustment int64
	if c.rlpEligible(rec) {
		switch s.LastAggressor {
		case domain.AggressorBuyer:
			tag = domain.RLPBuyer
			adjustment = rec.Qty
		case domain.AggressorSeller:
			tag = domain.RLPSeller
			adjustment = -rec.Qty
		default:
			// No direction observed yet this session.
			tag = domain.RLPUndefined
		}
	}
	s.NetRLP += adjustment

	switch rec.Aggressor {
	case domain.AggressorBuyer:
		s.AggressionBuyVolume += rec.Qty
	case domain.AggressorSeller:
		s.AggressionSellVolume += rec.Qty
	default:
		// Non-aggressive trades are attributed by their own operation.
		switch rec.Op {
		case domain.SideBuy:
			s.PassiveBuyVolume += rec.Qty
		case domain.SideSell:
			s.PassiveSellVolume += rec.Qty
		}
	}

	if c.flagged[rec.SellerBroker] {
		s.FlaggedVolume += rec.Qty
		s.FlaggedHistory.Append(domain.PricePoint{Price: rec.Price, Qty: rec.Qty})
	}

	if rec.BuyerBroker == rec.SellerBroker {
		s.SelfTrades[rec.BuyerBroker]++
	}

	return domain.ClassifiedTrade{TradeRecord: rec, Tag: tag, NetRLP: s.NetRLP}
}

// State exposes the live session state. Consumer-goroutine use only; other
// goroutines go through Snapshot.
func (c *Classifier) State() *domain.SessionState {
	return c.state
}

// Snapshot returns a deep copy of the session state.
func (c *Classifier) Snapshot() domain.SessionSnapshot {
	return c.state.Snapshot()
}
