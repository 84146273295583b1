package natsadapter

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRetryQueue_DeliversFirstTry(t *testing.T) {
	var mu sync.Mutex
	var got []string

	q := newRetryQueue(func(subject string, data []byte) error {
		mu.Lock()
		got = append(got, subject)
		mu.Unlock()
		return nil
	})
	q.start()
	defer q.stop()

	q.enqueue("sarthi.emergency.insert.CASE-1", []byte("{}"))

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("message never delivered")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRetryQueue_RetriesThenSucceeds(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	q := newRetryQueue(func(subject string, data []byte) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 3 {
			return errors.New("relay down")
		}
		return nil
	})
	q.start()
	defer q.stop()

	q.enqueue("sarthi.emergency.update.CASE-2", []byte("{}"))

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := attempts
		mu.Unlock()
		if n >= 3 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected 3 attempts, saw %d", n)
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestRetryQueue_FullQueueDropsWithoutBlocking(t *testing.T) {
	block := make(chan struct{})
	q := newRetryQueue(func(subject string, data []byte) error {
		<-block
		return nil
	})
	q.start()
	defer func() {
		close(block)
		q.stop()
	}()

	// Saturate the queue; extra enqueues must return promptly.
	done := make(chan struct{})
	go func() {
		for i := 0; i < queueCapacity+10; i++ {
			q.enqueue("sarthi.emergency.insert.X", []byte("{}"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}
}
