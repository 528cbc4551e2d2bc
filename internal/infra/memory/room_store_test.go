package memory

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/ukkpower/Netflix-Trivia/internal/app"
	"github.com/ukkpower/Netflix-Trivia/internal/domain"
)

func TestNewRoomIDNeverCollides(t *testing.T) {
	store := NewRoomStore(rand.New(rand.NewSource(1)))

	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		code := store.NewRoomID()
		if len(code) != 6 || code[0] == '0' {
			t.Fatalf("expected 6-digit code without leading zero, got %q", code)
		}
		if seen[code] {
			// Re-rolls only consult the registry, so duplicates are fine
			// until a code is registered; register each one to make the
			// uniqueness guarantee bite.
			t.Fatalf("code %q issued twice despite registration", code)
		}
		seen[code] = true
		store.Register(app.NewRoomSession(domain.Room{RoomID: code}))
	}
	if store.Len() != 5000 {
		t.Fatalf("expected 5000 registered rooms, got %d", store.Len())
	}
}

func TestNewRoomIDConcurrent(t *testing.T) {
	store := NewRoomStore(rand.New(rand.NewSource(1)))

	// Room creation can arrive on many connections at once; sampling must
	// stay exclusive or the shared rand source trips the race detector.
	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				code := store.NewRoomID()
				if len(code) != 6 || code[0] == '0' {
					t.Errorf("expected 6-digit code without leading zero, got %q", code)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRoomStoreGet(t *testing.T) {
	store := NewRoomStore(rand.New(rand.NewSource(1)))

	session := app.NewRoomSession(domain.Room{RoomID: "123456"})
	store.Register(session)

	got, ok := store.Get("123456")
	if !ok || got != session {
		t.Fatalf("expected registered session back, got %v ok=%v", got, ok)
	}
	if _, ok := store.Get("654321"); ok {
		t.Fatalf("expected unknown code to miss")
	}
}
