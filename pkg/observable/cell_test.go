package observable

import (
	"sync"
	"testing"
	"time"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestCell_Empty(t *testing.T) {
	c := NewCell[string]()

	v, ok := c.Get()
	if ok {
		t.Errorf("Get() on new cell = %q, true; want empty", v)
	}
	if c.Version() != 0 {
		t.Errorf("Version() = %d, want 0", c.Version())
	}
}

func TestCell_SetGet(t *testing.T) {
	c := NewCell[int]()
	c.Set(1)
	c.Set(2)

	v, ok := c.Get()
	if !ok || v != 2 {
		t.Errorf("Get() = %d, %v; want 2, true", v, ok)
	}
	if c.Version() != 2 {
		t.Errorf("Version() = %d, want 2", c.Version())
	}
}

func TestNewCellWith(t *testing.T) {
	c := NewCellWith("loading")

	v, ok := c.Get()
	if !ok || v != "loading" {
		t.Errorf("Get() = %q, %v; want loading, true", v, ok)
	}
	if c.Version() != 1 {
		t.Errorf("Version() = %d, want 1", c.Version())
	}
}

func TestCell_SubscribeReceivesCurrentValue(t *testing.T) {
	c := NewCellWith(7)

	ch, cancel := c.Subscribe()
	defer cancel()

	if got := receive(t, ch); got != 7 {
		t.Errorf("first value = %d, want 7", got)
	}
}

func TestCell_SubscribeEmptyCellWaits(t *testing.T) {
	c := NewCell[int]()

	ch, cancel := c.Subscribe()
	defer cancel()

	select {
	case v := <-ch:
		t.Fatalf("received %d before any Set", v)
	default:
	}

	c.Set(3)
	if got := receive(t, ch); got != 3 {
		t.Errorf("value = %d, want 3", got)
	}
}

func TestCell_SubscribeConflates(t *testing.T) {
	c := NewCell[int]()

	ch, cancel := c.Subscribe()
	defer cancel()

	for i := 1; i <= 100; i++ {
		c.Set(i)
	}

	if got := receive(t, ch); got != 100 {
		t.Errorf("value after burst = %d, want 100", got)
	}
	select {
	case v := <-ch:
		t.Errorf("unexpected extra value %d", v)
	default:
	}
}

func TestCell_UnsubscribeClosesChannel(t *testing.T) {
	c := NewCell[int]()

	ch, cancel := c.Subscribe()
	cancel()
	cancel() // idempotent

	if _, ok := <-ch; ok {
		t.Error("channel still open after unsubscribe")
	}

	// Publishing after unsubscribe must not panic on the closed channel.
	c.Set(1)
}

func TestCell_Observe(t *testing.T) {
	c := NewCellWith("a")

	var mu sync.Mutex
	var got []string
	stop := c.Observe(func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})

	c.Set("b")
	stop()
	c.Set("c")

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("observed %v, want [a b]", got)
	}
}

func TestCell_ObserveCanReadCell(t *testing.T) {
	c := NewCell[int]()

	seen := make(chan int, 1)
	stop := c.Observe(func(v int) {
		cur, _ := c.Get()
		seen <- cur
	})
	defer stop()

	c.Set(5)
	if got := receive(t, seen); got != 5 {
		t.Errorf("Get inside callback = %d, want 5", got)
	}
}

func TestCell_ConcurrentSetLastValueDelivered(t *testing.T) {
	c := NewCell[int]()

	ch, cancel := c.Subscribe()
	defer cancel()

	var mu sync.Mutex
	var lastObserved int
	stop := c.Observe(func(v int) {
		mu.Lock()
		lastObserved = v
		mu.Unlock()
	})
	defer stop()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			c.Set(v)
		}(i)
	}
	wg.Wait()

	final, _ := c.Get()
	if got := receive(t, ch); got != final {
		t.Errorf("channel last value = %d, cell holds %d", got, final)
	}

	mu.Lock()
	defer mu.Unlock()
	if lastObserved != final {
		t.Errorf("observer last value = %d, cell holds %d", lastObserved, final)
	}
}
