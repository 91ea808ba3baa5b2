package observable

import "sync"

// Readable exposes the read side of a Cell.
type Readable[T any] interface {
	// Get returns the current value and whether one has been published.
	Get() (T, bool)

	// Version returns the number of values published so far.
	Version() uint64

	// Subscribe returns a channel that receives the current value (if any)
	// and then the latest value after every change. Intermediate values may
	// be skipped when the reader is slow, but the last one is always
	// delivered. The returned func unsubscribes and closes the channel.
	Subscribe() (<-chan T, func())

	// Observe registers fn to be called with every published value, and
	// once immediately if a value is already present. Values reach fn in
	// publish order; a value older than one already delivered is dropped.
	// fn must not call Set on the same cell. The returned func unregisters fn.
	Observe(fn func(T)) func()
}

// Cell is a thread-safe single-value holder that notifies subscribers on change.
// The zero value is not usable; create cells with NewCell.
type Cell[T any] struct {
	mu      sync.Mutex
	value   T
	set     bool
	version uint64
	nextID  uint64
	subs    map[uint64]*subscriber[T]
}

type subscriber[T any] struct {
	ch chan T

	mu   sync.Mutex
	fn   func(T)
	last uint64
}

// call delivers v to a callback subscriber unless a newer value got there first.
func (s *subscriber[T]) call(seq uint64, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.last {
		return
	}
	s.last = seq
	s.fn(v)
}

// NewCell creates an empty cell.
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{subs: make(map[uint64]*subscriber[T])}
}

// NewCellWith creates a cell already holding v.
func NewCellWith[T any](v T) *Cell[T] {
	c := NewCell[T]()
	c.value = v
	c.set = true
	c.version = 1
	return c
}

// Get returns the current value and whether one has been published.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.set
}

// Version returns the number of values published so far.
func (c *Cell[T]) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Set replaces the current value and notifies all subscribers.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	c.set = true
	c.version++
	seq := c.version

	var callbacks []*subscriber[T]
	for _, s := range c.subs {
		if s.ch != nil {
			offer(s.ch, v)
			continue
		}
		callbacks = append(callbacks, s)
	}
	c.mu.Unlock()

	for _, s := range callbacks {
		s.call(seq, v)
	}
}

// Subscribe implements Readable.
func (c *Cell[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, 1)

	c.mu.Lock()
	id := c.add(&subscriber[T]{ch: ch})
	if c.set {
		ch <- c.value
	}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			close(ch)
			c.mu.Unlock()
		})
	}
}

// Observe implements Readable.
func (c *Cell[T]) Observe(fn func(T)) func() {
	s := &subscriber[T]{fn: fn}

	c.mu.Lock()
	id := c.add(s)
	v, ok, seq := c.value, c.set, c.version
	c.mu.Unlock()

	if ok {
		s.call(seq, v)
	}

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// add registers s; c.mu must be held.
func (c *Cell[T]) add(s *subscriber[T]) uint64 {
	c.nextID++
	c.subs[c.nextID] = s
	return c.nextID
}

// offer replaces whatever is buffered in ch with v. Only writers holding the
// cell lock send on ch, so after the drain the send cannot block.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}

var _ Readable[int] = (*Cell[int])(nil)
