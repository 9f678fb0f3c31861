package fanout

import (
	"errors"
	"sync"
	"testing"
)

func TestStoreSortedByIndex(t *testing.T) {
	t.Parallel()
	const n = 64
	s := NewStore[int](n)
	var wg sync.WaitGroup
	for i := n - 1; i >= 0; i-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Put(Success(i, i*i))
		}()
	}
	wg.Wait()
	if s.Len() != n {
		t.Fatalf("expected %d outcomes, got %d", n, s.Len())
	}
	for i, o := range s.Sorted() {
		if o.Index() != i || o.Value() != i*i {
			t.Fatalf("position %d holds index=%d value=%d", i, o.Index(), o.Value())
		}
	}
}

func TestStoreDuplicatePanics(t *testing.T) {
	t.Parallel()
	s := NewStore[int](1)
	s.Put(Success(0, 1))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate index")
		}
	}()
	s.Put(Failure[int](0, errors.New("again")))
}
