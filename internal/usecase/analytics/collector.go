// Package analytics hands search events to a publisher off the request path.
package analytics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain/search/event"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
)

// DefaultBufferSize is used when the configured buffer is not positive.
const DefaultBufferSize = 1024

// drainTimeout bounds publishing of buffered events on shutdown.
const drainTimeout = 5 * time.Second

// Publisher delivers one event to the analytics sink.
type Publisher interface {
	Publish(ctx context.Context, e event.Search) error
}

// Collector buffers events in a bounded channel and publishes them from a
// single goroutine. Track never blocks; events are dropped when the buffer is full.
type Collector struct {
	publisher Publisher
	events    chan event.Search
	logger    *zap.Logger
	done      chan struct{}

	// mu guards closed and the close of events against concurrent Track.
	mu     sync.RWMutex
	closed bool
}

// NewCollector creates a collector. Call Start before Track.
func NewCollector(p Publisher, bufferSize int, logger *zap.Logger) *Collector {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Collector{
		publisher: p,
		events:    make(chan event.Search, bufferSize),
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start launches the publishing loop. It stops when ctx is cancelled or Close is called.
func (c *Collector) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		for {
			select {
			case e, ok := <-c.events:
				if !ok {
					return
				}
				c.publish(ctx, e)
			case <-ctx.Done():
				c.drain()
				return
			}
		}
	}()
	c.logger.Info("Analytics collector started", zap.Int("buffer_size", cap(c.events)))
}

// Track enqueues an event. It drops the event when the buffer is full or
// the collector is closed.
func (c *Collector) Track(e event.Search) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		metrics.AnalyticsEventsTotal.WithLabelValues("dropped").Inc()
		c.logger.Debug("Analytics event dropped, collector closed", zap.String("query", e.Query))
		return
	}

	select {
	case c.events <- e:
	default:
		metrics.AnalyticsEventsTotal.WithLabelValues("dropped").Inc()
		c.logger.Warn("Analytics event dropped, buffer full", zap.String("query", e.Query))
	}
}

// Close stops accepting events and waits for buffered ones to be published.
// It is safe to call more than once and concurrently with Track.
func (c *Collector) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.events)
	}
	c.mu.Unlock()
	<-c.done
}

func (c *Collector) publish(ctx context.Context, e event.Search) {
	if err := c.publisher.Publish(ctx, e); err != nil {
		metrics.AnalyticsEventsTotal.WithLabelValues("failed").Inc()
		c.logger.Error("Failed to publish analytics event", zap.Error(err))
		return
	}
	metrics.AnalyticsEventsTotal.WithLabelValues("published").Inc()
}

func (c *Collector) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case e, ok := <-c.events:
			if !ok {
				return
			}
			c.publish(ctx, e)
		default:
			return
		}
	}
}
