package domain

// DefaultHistoryCap bounds the flagged-broker fill history. Unbounded
// accumulation over a full session is a resource leak.
const DefaultHistoryCap = 4096

// PricePoint is one flagged-broker fill: price in ticks and quantity.
type PricePoint struct {
	Price int64 `json:"price"`
	Qty   int64 `json:"qty"`
}

// FillHistory is a fixed-capacity ring of fills. Once full, the oldest
// entry is evicted on each append.
type FillHistory struct {
	buf  []PricePoint
	head int
	size int
}

// NewFillHistory creates a ring with the given capacity. Non-positive
// capacities fall back to DefaultHistoryCap.
func NewFillHistory(capacity int) *FillHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &FillHistory{buf: make([]PricePoint, capacity)}
}

// Append records a fill, evicting the oldest when at capacity.
func (h *FillHistory) Append(p PricePoint) {
	h.buf[h.head] = p
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Len returns the number of retained fills.
func (h *FillHistory) Len() int { return h.size }

// Points returns the retained fills in arrival order, oldest first.
func (h *FillHistory) Points() []PricePoint {
	out := make([]PricePoint, 0, h.size)
	start := h.head - h.size
	if start < 0 {
		start += len(h.buf)
	}
	for i := 0; i < h.size; i++ {
		out = append(out, h.buf[(start+i)%len(h.buf)])
	}
	return out
}

// SessionState is the per-session classification state. It is owned
// exclusively by the consumer loop, created at process start and discarded
// at shutdown. Only classified rows survive a session, never this state.
type SessionState struct {
	LastAggressor Aggressor
	LastPrice     int64
	NetRLP        int64

	AggressionBuyVolume  int64
	AggressionSellVolume int64
	PassiveBuyVolume     int64
	PassiveSellVolume    int64

	FlaggedVolume  int64
	FlaggedHistory *FillHistory

	// SelfTrades counts trades where buyer and seller broker match,
	// keyed by broker id.
	SelfTrades map[string]int64
}

// NewSessionState creates a fresh session state with all counters zeroed.
func NewSessionState(historyCap int) *SessionState {
	return &SessionState{
		FlaggedHistory: NewFillHistory(historyCap),
		SelfTrades:     make(map[string]int64),
	}
}

// SessionSnapshot is a copyable view of SessionState for external readers.
type SessionSnapshot struct {
	LastAggressor        Aggressor
	LastPrice            int64
	NetRLP               int64
	AggressionBuyVolume  int64
	AggressionSellVolume int64
	PassiveBuyVolume     int64
	PassiveSellVolume    int64
	FlaggedVolume        int64
	FlaggedFills         []PricePoint
	SelfTrades           map[string]int64
}

// Snapshot returns a deep copy safe to hand to other goroutines.
func (s *SessionState) Snapshot() SessionSnapshot {
	counts := make(map[string]int64, len(s.SelfTrades))
	for k, v := range s.SelfTrades {
		counts[k] = v
	}
	return SessionSnapshot{
		LastAggressor:        s.LastAggressor,
		LastPrice:            s.LastPrice,
		NetRLP:               s.NetRLP,
		AggressionBuyVolume:  s.AggressionBuyVolume,
		AggressionSellVolume: s.AggressionSellVolume,
		PassiveBuyVolume:     s.PassiveBuyVolume,
		PassiveSellVolume:    s.PassiveSellVolume,
		FlaggedVolume:        s.FlaggedVolume,
		FlaggedFills:         s.FlaggedHistory.Points(),
		SelfTrades:           counts,
	}
}
