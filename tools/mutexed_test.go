package tools

import (
	"sync"
	"testing"
)

func TestMutexed(t *testing.T) {
	m := CreateMutexed(1)
	if got := m.Get(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	m.Set(2)
	m.Modify(func(v *int) { *v += 3 })
	if got := m.Get(); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestMutexed_ConcurrentModify(t *testing.T) {
	m := CreateMutexed(0)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Modify(func(v *int) { *v++ })
		}()
	}
	wg.Wait()
	if got := m.Get(); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}
