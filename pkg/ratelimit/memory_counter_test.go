package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCounterIncrement(t *testing.T) {
	counter := NewMemoryCounter()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Increment(ctx, "demo-1", time.Minute)
		if err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
		if got != want {
			t.Errorf("Increment() = %d, want %d", got, want)
		}
	}
}

func TestMemoryCounterKeysAreIndependent(t *testing.T) {
	counter := NewMemoryCounter()
	ctx := context.Background()

	if _, err := counter.Increment(ctx, "demo-1", time.Minute); err != nil {
		t.Fatal(err)
	}
	got, err := counter.Increment(ctx, "demo-2", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("fresh key count = %d, want 1", got)
	}
}

func TestMemoryCounterWindowFixedUnderSteadyTraffic(t *testing.T) {
	counter := NewMemoryCounter()
	ctx := context.Background()

	// Repeated increments must not push the window's expiry out; the count
	// resets once the window set by the first hit elapses.
	if _, err := counter.Increment(ctx, "demo-1", 100*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if _, err := counter.Increment(ctx, "demo-1", 100*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)

	got, err := counter.Increment(ctx, "demo-1", 100*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("count after window elapsed = %d, want 1", got)
	}
}

func TestMemoryCounterWindowExpiry(t *testing.T) {
	counter := NewMemoryCounter()
	ctx := context.Background()

	if _, err := counter.Increment(ctx, "demo-1", 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	got, err := counter.Increment(ctx, "demo-1", 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("count after window expiry = %d, want 1", got)
	}
}
