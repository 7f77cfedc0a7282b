package keylock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/boddenberg/pj-ledger-go/internal/infra/keylock"
)

func TestTable_LockSerializesSameKey(t *testing.T) {
	table := keylock.New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table.Lock("a")
			counter++
			table.Unlock("a")
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("expected 100, got %d (lost increment under lock)", counter)
	}
}

func TestTable_LockPair_OpposingOrdersDoNotDeadlock(t *testing.T) {
	table := keylock.New()

	const rounds = 500
	done := make(chan struct{})

	go func() {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				table.LockPair("a", "b")
				table.UnlockPair("a", "b")
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				table.LockPair("b", "a")
				table.UnlockPair("b", "a")
			}
		}()
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("deadlock: opposing pair locks did not complete")
	}
}

func TestTable_LockPair_EqualKeysLockOnce(t *testing.T) {
	table := keylock.New()

	done := make(chan struct{})
	go func() {
		// Would self-deadlock if LockPair took the same mutex twice.
		table.LockPair("a", "a")
		table.UnlockPair("a", "a")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("LockPair with equal keys deadlocked")
	}
}

func TestTable_DisjointKeysRunInParallel(t *testing.T) {
	table := keylock.New()

	table.Lock("a")
	defer table.Unlock("a")

	done := make(chan struct{})
	go func() {
		table.Lock("b")
		table.Unlock("b")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on unrelated key blocked behind held lock")
	}
}
