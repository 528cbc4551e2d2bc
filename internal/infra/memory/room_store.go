package memory

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/ukkpower/Netflix-Trivia/internal/app"
)

const (
	roomIDMin  = 100000
	roomIDSpan = 900000
)

// RoomStore is an in-memory implementation of app.RoomRepository keyed by
// 6-digit room codes.
type RoomStore struct {
	mu    sync.RWMutex
	rnd   *rand.Rand
	rooms map[string]*app.RoomSession
}

func NewRoomStore(rnd *rand.Rand) *RoomStore {
	return &RoomStore{
		rnd:   rnd,
		rooms: make(map[string]*app.RoomSession),
	}
}

// NewRoomID samples 6-digit codes until one not present in the registry
// comes up. With a 900000-entry code space the loop terminates quickly at
// any realistic occupancy. Takes the write lock: rand.Rand is not safe
// for concurrent use, so sampling must be exclusive.
func (s *RoomStore) NewRoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		code := strconv.Itoa(roomIDMin + s.rnd.Intn(roomIDSpan))
		if _, taken := s.rooms[code]; !taken {
			return code
		}
	}
}

func (s *RoomStore) Register(session *app.RoomSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[session.RoomID()] = session
}

func (s *RoomStore) Get(roomID string) (*app.RoomSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.rooms[roomID]
	return session, ok
}

// Len reports how many rooms are registered.
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
