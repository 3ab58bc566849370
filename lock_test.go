//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"errors"
	"sync"
	"testing"
)

func TestLockTryWriteContention(t *testing.T) {
	var c lockCoordinator

	release, err := c.tryWrite("step")
	if err != nil {
		t.Fatalf("tryWrite failed on an idle coordinator: %v", err)
	}

	if _, err := c.tryWrite("other"); err == nil {
		t.Fatal("second tryWrite should fail while the lock is held")
	} else {
		var ce *ContentionError
		if !errors.As(err, &ce) {
			t.Fatalf("contention error type = %T", err)
		}
		if ce.Holder != "step" {
			t.Errorf("ContentionError.Holder = %q, want %q", ce.Holder, "step")
		}
	}

	if _, err := c.tryRead("reader"); !IsBusy(err) {
		t.Errorf("tryRead during exclusive hold: err = %v, want busy", err)
	}

	release()
	release2, err := c.tryWrite("again")
	if err != nil {
		t.Fatalf("tryWrite after release failed: %v", err)
	}
	release2()
}

func TestLockSharedReaders(t *testing.T) {
	var c lockCoordinator

	r1, err := c.tryRead("a")
	if err != nil {
		t.Fatalf("first tryRead failed: %v", err)
	}
	r2, err := c.tryRead("b")
	if err != nil {
		t.Fatalf("second tryRead failed: %v", err)
	}

	_, err = c.tryWrite("writer")
	var ce *ContentionError
	if !errors.As(err, &ce) {
		t.Fatalf("tryWrite during reads: err = %v, want ContentionError", err)
	}
	if ce.Holder != "" {
		t.Errorf("Holder = %q, want empty for reader-held lock", ce.Holder)
	}
	if ce.Readers != 2 {
		t.Errorf("Readers = %d, want 2", ce.Readers)
	}

	r1()
	r2()
	release, err := c.tryWrite("writer")
	if err != nil {
		t.Fatalf("tryWrite after readers released: %v", err)
	}
	release()
}

func TestLockDestroyed(t *testing.T) {
	var c lockCoordinator

	release, err := c.tryWrite("close")
	if err != nil {
		t.Fatalf("tryWrite failed: %v", err)
	}
	c.markDestroyed()
	release()

	if _, err := c.tryRead("r"); !IsDestroyed(err) {
		t.Errorf("tryRead after destroy: err = %v, want ErrDestroyed", err)
	}
	if _, err := c.tryWrite("w"); !IsDestroyed(err) {
		t.Errorf("tryWrite after destroy: err = %v, want ErrDestroyed", err)
	}
	if _, err := c.read("r"); !IsDestroyed(err) {
		t.Errorf("read after destroy: err = %v, want ErrDestroyed", err)
	}
	if _, err := c.write("w"); !IsDestroyed(err) {
		t.Errorf("write after destroy: err = %v, want ErrDestroyed", err)
	}

	// Destroyed beats busy: contention on a dead coordinator must not
	// look retryable.
	if err := c.contention("op"); !IsDestroyed(err) || IsBusy(err) {
		t.Errorf("contention after destroy: err = %v, want pure ErrDestroyed", err)
	}
}

func TestLockBlockingWrite(t *testing.T) {
	var c lockCoordinator

	release, err := c.tryWrite("first")
	if err != nil {
		t.Fatalf("tryWrite failed: %v", err)
	}

	var wg sync.WaitGroup
	acquired := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		r, err := c.write("second")
		if err != nil {
			t.Errorf("blocking write failed: %v", err)
			return
		}
		close(acquired)
		r()
	}()

	select {
	case <-acquired:
		t.Fatal("blocking write completed while the lock was held")
	default:
	}

	release()
	wg.Wait()
	<-acquired
}

func TestLockConcurrentReaders(t *testing.T) {
	var c lockCoordinator
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				release, err := c.read("reader")
				if err != nil {
					t.Errorf("read failed: %v", err)
					return
				}
				release()
			}
		}()
	}
	wg.Wait()

	release, err := c.tryWrite("after")
	if err != nil {
		t.Fatalf("tryWrite after concurrent reads: %v", err)
	}
	release()
}
