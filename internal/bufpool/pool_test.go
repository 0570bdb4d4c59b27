package bufpool

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// TestMain verifies that none of the goroutines spawned by this package's
// concurrency tests (producer/consumer pairs over Pool[T]) leak past the
// end of the test run.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPool_OrderAndCapacity(t *testing.T) {
	send, recv := New[uint32](5)

	for i := uint32(0); i < 5; i++ {
		tok, ok := send.Get()
		if !ok {
			t.Fatalf("Get %d: expected a free buffer", i)
		}
		tok.SetItem(i)
		tok.Commit()
	}

	for i := uint32(0); i < 5; i++ {
		tok, ok := recv.Get()
		if !ok {
			t.Fatalf("Recv %d: expected a ready buffer", i)
		}
		if got := tok.Item(); got != i {
			t.Fatalf("Recv %d: got %d, want %d", i, got, i)
		}
		tok.Release()
	}
}

func TestPool_SixthGetBlocksUntilRelease(t *testing.T) {
	send, recv := New[uint32](5)
	for i := uint32(0); i < 5; i++ {
		tok, _ := send.Get()
		tok.SetItem(i)
		tok.Commit()
	}

	done := make(chan *ProducerToken[uint32])
	go func() {
		tok, ok := send.Get()
		if !ok {
			done <- nil
			return
		}
		done <- tok
	}()

	select {
	case <-done:
		t.Fatal("sixth Get should have blocked with no free buffers")
	case <-time.After(50 * time.Millisecond):
	}

	// Draining one consumer buffer (without release) should not unblock
	// the producer; only an explicit release or dropped-token Close does.
	ctok, ok := recv.Get()
	if !ok {
		t.Fatal("expected a ready buffer")
	}
	ctok.Release()

	select {
	case tok := <-done:
		if tok == nil {
			t.Fatal("expected the sixth Get to succeed once a buffer freed up")
		}
	case <-time.After(time.Second):
		t.Fatal("sixth Get never unblocked after release")
	}
}

func TestToken_DropWithoutReleaseReturnsBufferToFree(t *testing.T) {
	send, recv := New[uint32](5)

	for i := uint32(0); i < 5; i++ {
		tok, _ := send.Get()
		tok.SetItem(i)
		tok.Commit()
	}

	// Drop every consumer token without Release: Close returns each to free.
	for i := 0; i < 5; i++ {
		ctok, _ := recv.Get()
		_ = ctok.Close()
	}

	for i := 0; i < 5; i++ {
		tok, ok := send.Get()
		if !ok {
			t.Fatalf("commit %d: expected a free buffer after token drop", i)
		}
		tok.SetItem(uint32(i))
		tok.Commit()
	}
}

func TestSendEnd_CloseAfterKCommitsEndsConsumerAtKPlusOne(t *testing.T) {
	const k = 3
	send, recv := New[uint32](5)
	for i := uint32(0); i < k; i++ {
		tok, _ := send.Get()
		tok.SetItem(i)
		tok.Commit()
	}
	_ = send.Close()

	for i := 0; i < k; i++ {
		tok, ok := recv.Get()
		if !ok {
			t.Fatalf("Get %d: expected a ready buffer before Done", i)
		}
		tok.Release()
	}
	if _, ok := recv.Get(); ok {
		t.Fatalf("Get %d: expected Done after %d commits", k+1, k)
	}
}

func TestThreadedPipeline_OrderedHandoff(t *testing.T) {
	const n = 50
	send, recv := New[uint32](8)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint32(0); i < n; i++ {
			tok, ok := send.Get()
			if !ok {
				return
			}
			tok.SetItem(i)
			tok.Commit()
		}
		_ = send.Close()
	}()

	got := make([]uint32, 0, n)
	for {
		tok, ok := recv.Get()
		if !ok {
			break
		}
		got = append(got, tok.Item())
		tok.Release()
	}
	wg.Wait()

	if len(got) != n {
		t.Fatalf("got %d items, want %d", len(got), n)
	}
	for i, v := range got {
		if v != uint32(i) {
			t.Fatalf("item %d out of order: got %d", i, v)
		}
	}
}
