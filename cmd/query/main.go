package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"rlpmon/internal/domain"
	"rlpmon/internal/infra/storage"
	"rlpmon/internal/service"
)

// Offline reader over the capture database: time-range filter plus the
// session aggregates the live monitor shows.
func main() {
	dbPath := flag.String("db", "data/trades.db", "path to the capture database")
	from := flag.String("from", "00:00:00.000", "range start (HH:MM:SS.mmm)")
	to := flag.String("to", "23:59:59.999", "range end (HH:MM:SS.mmm)")
	flagged := flag.String("flagged", "630,127", "comma-separated flagged seller broker codes")
	flag.Parse()

	store, err := storage.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", *dbPath, err)
		os.Exit(1)
	}

	rows, err := store.TradesBetween(*from, *to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Printf("no trades between %s and %s\n", *from, *to)
		return
	}

	report := service.BuildReport(rows, splitCodes(*flagged))

	fmt.Printf("trades:            %d\n", report.Trades)
	fmt.Printf("rlp buy volume:    %d\n", report.RLPBuyVolume)
	fmt.Printf("rlp sell volume:   %d\n", report.RLPSellVolume)
	fmt.Printf("final net rlp:     %d\n", report.FinalNetRLP)
	fmt.Printf("aggression b/s:    %d / %d\n", report.AggressionBuyVolume, report.AggressionSellVolume)
	fmt.Printf("passive b/s:       %d / %d\n", report.PassiveBuyVolume, report.PassiveSellVolume)
	fmt.Printf("flagged volume:    %d\n", report.FlaggedVolume)
	if !report.FlaggedAvgPrice.IsZero() {
		fmt.Printf("flagged avg price: %s\n", report.FlaggedAvgPrice)
	}

	if len(report.SelfTrades) > 0 {
		fmt.Println("\npossible market makers (buyer == seller):")
		for _, bc := range report.SelfTrades {
			fmt.Printf("  %-45s %d\n", bc.Name, bc.Count)
		}
	}

	fmt.Println("\nlast trades:")
	start := len(rows) - 10
	if start < 0 {
		start = 0
	}
	for _, r := range rows[start:] {
		fmt.Printf("  #%d %s %s %s p=%d q=%d %s->%s %s net=%d\n",
			r.ID, r.Instrument, r.Clock, r.Operation, r.Price, r.Qty,
			domain.BrokerName(r.BuyerBroker), domain.BrokerName(r.SellerBroker),
			r.RLPTag, r.NetRLP)
	}
}

func splitCodes(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
