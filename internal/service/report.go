package service

import (
	"sort"

	"rlpmon/internal/domain"

	"github.com/shopspring/decimal"
)

// BrokerCount is one self-trade frequency entry with the resolved broker
// name.
type BrokerCount struct {
	Code  string
	Name  string
	Count int64
}

// Report aggregates persisted trade rows for the read side. All values are
// recomputed from rows, never from live session state.
type Report struct {
	Trades int

	RLPBuyVolume  int64
	RLPSellVolume int64
	FinalNetRLP   int64

	AggressionBuyVolume  int64
	AggressionSellVolume int64
	PassiveBuyVolume     int64
	PassiveSellVolume    int64

	FlaggedVolume   int64
	FlaggedAvgPrice decimal.Decimal

	SelfTrades []BrokerCount
}

// BuildReport computes session aggregates over rows in insertion order.
// flaggedBrokers is the same seller watch-list the capture side used.
func BuildReport(rows []domain.TradeRow, flaggedBrokers []string) Report {
	flagged := make(map[string]bool, len(flaggedBrokers))
	for _, b := range flaggedBrokers {
		flagged[b] = true
	}

	var r Report
	r.Trades = len(rows)

	selfCounts := make(map[string]int64)
	flaggedNotional := decimal.Zero
	flaggedQty := decimal.Zero

	for _, row := range rows {
		switch row.RLPTag {
		case domain.RLPBuyer.String():
			r.RLPBuyVolume += row.Qty
		case domain.RLPSeller.String():
			r.RLPSellVolume += row.Qty
		}
		r.FinalNetRLP = row.NetRLP

		switch row.Aggressor {
		case domain.AggressorBuyer.String():
			r.AggressionBuyVolume += row.Qty
		case domain.AggressorSeller.String():
			r.AggressionSellVolume += row.Qty
		default:
			switch row.Operation {
			case domain.SideBuy.String():
				r.PassiveBuyVolume += row.Qty
			case domain.SideSell.String():
				r.PassiveSellVolume += row.Qty
			}
		}

		if flagged[row.SellerBroker] {
			r.FlaggedVolume += row.Qty
			qty := decimal.NewFromInt(row.Qty)
			flaggedNotional = flaggedNotional.Add(decimal.NewFromInt(row.Price).Mul(qty))
			flaggedQty = flaggedQty.Add(qty)
		}

		if row.BuyerBroker == row.SellerBroker {
			selfCounts[row.BuyerBroker]++
		}
	}

	if !flaggedQty.IsZero() {
		r.FlaggedAvgPrice = flaggedNotional.Div(flaggedQty).Round(2)
	}

	r.SelfTrades = make([]BrokerCount, 0, len(selfCounts))
	for code, count := range selfCounts {
		r.SelfTrades = append(r.SelfTrades, BrokerCount{
			Code:  code,
			Name:  domain.BrokerName(code),
			Count: count,
		})
	}
	sort.Slice(r.SelfTrades, func(i, j int) bool {
		if r.SelfTrades[i].Count != r.SelfTrades[j].Count {
			return r.SelfTrades[i].Count > r.SelfTrades[j].Count
		}
		return r.SelfTrades[i].Code < r.SelfTrades[j].Code
	})

	return r
}
