package redis

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ukkpower/Netflix-Trivia/internal/app"
)

// RoomStore is a Redis-aware implementation of app.RoomRepository.
// Notes:
//   - Sessions stay in a local in-memory map; the mutex-guarded session
//     logic is all in-process.
//   - Redis marks room liveness and reserves codes, so code collisions are
//     visible across instances even before the local map knows a room.
//   - For true distribution you'd pair this with a pub/sub projector that
//     fans out notifications.
type RoomStore struct {
	client *redis.Client
	ttl    time.Duration
	rnd    *rand.Rand
	mu     sync.RWMutex
	rooms  map[string]*app.RoomSession
}

func NewRoomStore(client *redis.Client, ttl time.Duration, rnd *rand.Rand) *RoomStore {
	return &RoomStore{
		client: client,
		ttl:    ttl,
		rnd:    rnd,
		rooms:  make(map[string]*app.RoomSession),
	}
}

// NewRoomID holds the write lock while sampling: rand.Rand is not safe
// for concurrent use.
func (s *RoomStore) NewRoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		code := strconv.Itoa(100000 + s.rnd.Intn(900000))
		if _, taken := s.rooms[code]; taken {
			continue
		}
		// best-effort cross-instance reservation
		reserved, err := s.client.SetNX(context.Background(), s.key(code), "1", s.ttl).Result()
		if err != nil || reserved {
			return code
		}
	}
}

func (s *RoomStore) Register(session *app.RoomSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[session.RoomID()] = session
	_ = s.client.Set(context.Background(), s.key(session.RoomID()), "1", s.ttl).Err()
}

func (s *RoomStore) Get(roomID string) (*app.RoomSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.rooms[roomID]
	return session, ok
}

func (s *RoomStore) key(roomID string) string {
	return "trivia:room:" + roomID
}
