package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"rlpmon/internal/infra"

	"github.com/gorilla/websocket"
)

const (
	maxRetries       = 10
	baseDelay        = 1 * time.Second
	maxDelay         = 60 * time.Second
	handshakeTimeout = 10 * time.Second
	readTimeout      = 60 * time.Second
)

// MessageSink receives each raw text frame from the feed. It must not
// block on classification or persistence work of its own.
type MessageSink func(msg string)

// Worker maintains the quote-tape WebSocket session: dial, subscribe for
// the configured instrument, forward frames to the sink, and re-dial on
// transient disconnects until reconnection is disabled.
type Worker struct {
	url        string
	instrument string
	sink       MessageSink
	conn       *websocket.Conn
	mu         sync.RWMutex
	writeMu    sync.Mutex
	connected  bool
	reconnect  atomic.Bool
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewWorker creates a feed worker for one instrument stream.
func NewWorker(url, instrument string, sink MessageSink) *Worker {
	w := &Worker{
		url:        url,
		instrument: instrument,
		sink:       sink,
	}
	w.reconnect.Store(true)
	return w
}

// Connect starts the connection loop in its own goroutine.
func (w *Worker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *Worker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	backoff := infra.ExpBackoff(baseDelay, maxDelay)
	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !w.reconnect.Load() {
			slog.Info("Feed reconnection disabled, worker stopping")
			return
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("Feed connection failed", slog.Any("error", err), slog.Int("retry", retryCount))
			delay := backoff(retryCount)
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
				continue
			}
		} else {
			retryCount = 0
			w.readLoop(ctx)
			slog.Info("Feed disconnected")
		}
	}
}

func (w *Worker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	conn, _, err := dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.connected = true
	w.mu.Unlock()

	if err := w.subscribe(); err != nil {
		w.closeConnection()
		return fmt.Errorf("subscribe failed: %w", err)
	}

	slog.Info("Feed connected", slog.String("instrument", w.instrument))
	return nil
}

// subscribe issues the quote-tape subscription command for the instrument.
func (w *Worker) subscribe() error {
	cmd := fmt.Sprintf("gqt %s s", w.instrument)
	return w.threadSafeWrite(websocket.TextMessage, []byte(cmd))
}

func (w *Worker) threadSafeWrite(msgType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.conn == nil {
		return fmt.Errorf("no conn")
	}
	return w.conn.WriteMessage(msgType, data)
}

func (w *Worker) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.mu.RLock()
		if w.conn == nil {
			w.mu.RUnlock()
			return
		}
		w.conn.SetReadDeadline(time.Now().Add(readTimeout))
		w.mu.RUnlock()

		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			w.closeConnection()
			return
		}
		w.sink(string(msg))
	}
}

func (w *Worker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	w.connected = false
}

// DisableReconnect stops the worker from re-dialing after the current
// connection ends. Used when the feed reports a session-fatal condition.
func (w *Worker) DisableReconnect() {
	w.reconnect.Store(false)
}

// IsConnected reports whether a connection is currently established.
func (w *Worker) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

// Disconnect cancels the connection loop and waits for it to exit.
func (w *Worker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}
