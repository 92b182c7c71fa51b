package events

import (
	"log/slog"
	"runtime/debug"
	"sync"
)

// Handler handles a published event.
type Handler func(Event)

// Bus is the interface consumers publish to and subscribe on.
type Bus interface {
	Publish(event Event)
	// Subscribe registers handler for topic and returns its unsubscribe function.
	Subscribe(topic Topic, handler Handler) func()
}

type subscription struct {
	id      uint64
	handler Handler
}

// AsyncBus delivers events on a single dispatcher goroutine, in publish order.
type AsyncBus struct {
	mu       sync.RWMutex
	handlers map[Topic][]subscription
	nextID   uint64

	eventChan chan Event
	quit      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	logger    *slog.Logger
}

// NewAsyncBus starts a bus with the given queue size.
func NewAsyncBus(bufferSize int, logger *slog.Logger) *AsyncBus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &AsyncBus{
		handlers:  make(map[Topic][]subscription),
		eventChan: make(chan Event, bufferSize),
		quit:      make(chan struct{}),
		logger:    logger,
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event. When the queue is full the event is dropped and logged.
func (b *AsyncBus) Publish(event Event) {
	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("event bus full, dropping event", slog.String("topic", string(event.Topic())))
	}
}

// Subscribe registers handler for topic. The returned function is idempotent.
func (b *AsyncBus) Subscribe(topic Topic, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[topic] = append(b.handlers[topic], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[topic]
		for i, s := range subs {
			if s.id == id {
				b.handlers[topic] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(b.handlers[topic]) == 0 {
			delete(b.handlers, topic)
		}
	}
}

// Close stops the dispatcher. Queued events that have not been delivered are discarded.
func (b *AsyncBus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

func (b *AsyncBus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)
		case <-b.quit:
			return
		}
	}
}

func (b *AsyncBus) deliver(event Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Topic()]))
	copy(subs, b.handlers[event.Topic()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.call(s.handler, event)
	}
}

func (b *AsyncBus) call(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic",
				slog.String("topic", string(event.Topic())),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()
	h(event)
}

// NopBus discards everything. Useful where no one listens.
type NopBus struct{}

func (NopBus) Publish(Event) {}

func (NopBus) Subscribe(Topic, Handler) func() { return func() {} }
