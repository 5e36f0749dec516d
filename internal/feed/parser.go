package feed

import (
	"strconv"
	"strings"

	"rlpmon/internal/domain"
)

// tradeTag marks a trade report line on the quote tape.
const tradeTag = "V"

// minFields is the minimum colon-field count of a trade report.
const minFields = 12

// Parse converts one raw feed line into a TradeRecord. A line is a trade
// report only when its first colon field is the trade tag and it carries at
// least 12 fields; anything else returns ErrNotTradeMessage with no side
// effects. Parse is pure and stateless.
func Parse(msg string) (domain.TradeRecord, error) {
	parts := strings.Split(msg, ":")
	if parts[0] != tradeTag || len(parts) < minFields {
		return domain.TradeRecord{}, domain.ErrNotTradeMessage
	}

	price, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return domain.TradeRecord{}, domain.ErrNotTradeMessage
	}

	// Non-numeric quantity is tolerated as zero, not rejected.
	qty, err := strconv.ParseUint(parts[7], 10, 63)
	if err != nil {
		qty = 0
	}

	return domain.TradeRecord{
		Instrument:   parts[1],
		Op:           parseSide(parts[2]),
		RawTime:      parts[3],
		Price:        price,
		BuyerBroker:  parts[5],
		SellerBroker: parts[6],
		Qty:          int64(qty),
		SeqID:        parts[8],
		Condition:    parts[9],
		Aggressor:    parseAggressor(parts[10]),
		ExtCondition: parts[11],
	}, nil
}

func parseSide(code string) domain.Side {
	switch code {
	case "C":
		return domain.SideBuy
	case "V":
		return domain.SideSell
	default:
		return domain.SideUnknown
	}
}

func parseAggressor(code string) domain.Aggressor {
	switch code {
	case "A":
		return domain.AggressorBuyer
	case "V":
		return domain.AggressorSeller
	default:
		return domain.AggressorNone
	}
}
