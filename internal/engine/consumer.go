package engine

import (
	"context"
	"log/slog"
	"sync"

	"rlpmon/internal/domain"
	"rlpmon/internal/feed"
	"rlpmon/internal/infra"
)

// TradeWriter persists one classified trade durably before the consumer
// advances to the next message.
type TradeWriter interface {
	InsertTrade(ctx context.Context, ct domain.ClassifiedTrade) error
}

// Consumer is the single thread of control that owns classification state
// and the storage handle. The inbox channel is the only synchronization
// point with the feed's delivery goroutine: message order in equals
// classification order out.
type Consumer struct {
	inbox      chan string
	classifier *Classifier
	writer     TradeWriter
	fatal      []string
	onFatal    func()

	// mu guards the classifier state for external snapshot reads.
	mu sync.RWMutex
}

// NewConsumer creates a consumer over a bounded inbox. A zero queueSize
// falls back to a default large enough that the producer only blocks under
// sustained overload.
func NewConsumer(queueSize int, classifier *Classifier, writer TradeWriter, fatal []string) *Consumer {
	if queueSize <= 0 {
		queueSize = 65536
	}
	if len(fatal) == 0 {
		fatal = feed.DefaultFatalMessages
	}
	return &Consumer{
		inbox:      make(chan string, queueSize),
		classifier: classifier,
		writer:     writer,
		fatal:      fatal,
	}
}

// OnFatal registers a callback invoked when a session-fatal control
// message is recognized, before the loop exits. Used to disable feed
// reconnection.
func (c *Consumer) OnFatal(fn func()) {
	c.onFatal = fn
}

// Enqueue delivers one raw feed message. Safe for concurrent use; blocks
// only when the inbox is full.
func (c *Consumer) Enqueue(msg string) {
	infra.GlobalMetrics.RecordMessage()
	c.inbox <- msg
}

// Run processes messages strictly in arrival order until the context is
// cancelled or a fatal condition occurs. Cancellation is observed at the
// dequeue point; messages still queued at that moment are dropped.
// Returns nil on cooperative shutdown, the fatal error otherwise.
func (c *Consumer) Run(ctx context.Context) error {
	slog.Info("Consumer started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("Consumer stopping", slog.Int("dropped", len(c.inbox)))
			return nil
		case msg := <-c.inbox:
			if err := c.handle(ctx, msg); err != nil {
				return err
			}
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg string) error {
	if feed.IsFatalControl(msg, c.fatal) {
		slog.Error("Fatal feed condition received", slog.String("message", msg))
		if c.onFatal != nil {
			c.onFatal()
		}
		return &domain.FeedFatalError{Msg: msg}
	}

	rec, err := feed.Parse(msg)
	if err != nil {
		infra.GlobalMetrics.RecordRejection()
		slog.Debug("Discarding non-trade message", slog.String("message", msg))
		return nil
	}

	c.mu.Lock()
	ct := c.classifier.Process(rec)
	c.mu.Unlock()
	infra.GlobalMetrics.RecordClassified()

	slog.Info("Trade classified",
		slog.String("instrument", ct.Instrument),
		slog.String("time", domain.FormatClock(ct.RawTime)),
		slog.Int64("price", ct.Price),
		slog.Int64("qty", ct.Qty),
		slog.String("rlp", ct.Tag.String()),
		slog.String("aggressor", ct.Aggressor.String()),
	)

	if err := c.writer.InsertTrade(ctx, ct); err != nil {
		slog.Error("Persistence failed, halting", slog.Any("error", err))
		return err
	}
	infra.GlobalMetrics.RecordPersisted()
	return nil
}

// Snapshot returns a copy of the session state for external readers.
func (c *Consumer) Snapshot() domain.SessionSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.classifier.Snapshot()
}
