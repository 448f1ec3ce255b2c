package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/skillbridge/jobmatch/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var ErrDispatcherStopped = errors.New("dispatcher stopped")

// Dispatcher delivers notifications asynchronously on a fixed set of workers.
// Notifications are sharded by recipient so messages to one address keep
// their order. Dispatcher itself satisfies ports.Notifier.
type Dispatcher struct {
	workers  []chan ports.Notification
	delivery ports.Notifier
	log      zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers feeding
// delivery. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, delivery ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.Notification, numWorkers),
		delivery: delivery,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their queue and exit
// after Stop, or exit immediately when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Send enqueues n on the worker responsible for its recipient. It blocks
// only while that worker's buffer is full.
func (d *Dispatcher) Send(ctx context.Context, n ports.Notification) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.workers[d.shardIndex(n.Recipient)] <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the queues and waits for the workers to drain them.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(recipient)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.delivery.Send(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("kind", string(n.Kind)).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
