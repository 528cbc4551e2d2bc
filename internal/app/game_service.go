package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/ukkpower/Netflix-Trivia/internal/domain"
)

// RoomRepository abstracts how room sessions are stored and how fresh
// room codes are minted (in-memory, redis-backed, etc).
type RoomRepository interface {
	NewRoomID() string
	Register(session *RoomSession)
	Get(roomID string) (*RoomSession, bool)
}

// Messenger delivers outbound notifications to a single connection.
// Broadcasts are fan-outs over room membership, driven by the service.
type Messenger interface {
	Send(connectionID string, event domain.Event)
}

// RoomConfig carries the creation-time settings for a room.
type RoomConfig struct {
	QuestionTimeLimit int
	QuestionsPerRound int
	Mode              domain.Mode
	RoundPlan         []int
}

// GameService owns every room's life cycle: creation, joins, quiz start,
// question advance, answer submission, and round/game boundaries.
type GameService struct {
	rooms  RoomRepository
	rounds *RoundGenerator
	bus    Messenger
}

func NewGameService(rooms RoomRepository, rounds *RoundGenerator, bus Messenger) *GameService {
	return &GameService{rooms: rooms, rounds: rounds, bus: bus}
}

// RoomSession wraps one room's state behind a mutex. Every mutation runs
// as one atomic unit; round generation releases the lock while the fetch
// is outstanding and applies its result only after it resolves.
type RoomSession struct {
	mu            sync.Mutex
	room          domain.Room
	roundInFlight bool
}

// NewRoomSession is exported for repositories that need to seed sessions.
func NewRoomSession(room domain.Room) *RoomSession {
	return &RoomSession{room: room}
}

// RoomID returns the session's immutable room code.
func (s *RoomSession) RoomID() string {
	return s.room.RoomID
}

// Snapshot returns a copy of the room safe to hand to transports.
func (s *RoomSession) Snapshot() *domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *RoomSession) snapshotLocked() *domain.Room {
	snap := s.room
	snap.Players = make(map[string]*domain.Player, len(s.room.Players))
	for id, p := range s.room.Players {
		cp := *p
		cp.CurrentRoundAnswers = make(map[int]bool, len(p.CurrentRoundAnswers))
		for q, ok := range p.CurrentRoundAnswers {
			cp.CurrentRoundAnswers[q] = ok
		}
		snap.Players[id] = &cp
	}
	return &snap
}

// membersLocked returns every connection that should receive broadcasts:
// all players plus the game master.
func (s *RoomSession) membersLocked() []string {
	members := make([]string, 0, len(s.room.Players)+1)
	for id := range s.room.Players {
		members = append(members, id)
	}
	if _, ok := s.room.Players[s.room.GameMasterID]; !ok {
		members = append(members, s.room.GameMasterID)
	}
	return members
}

// CreateRoom allocates a room, synchronously materializes the first
// round, and registers the room under a fresh 6-digit code. A provider
// failure aborts creation; no partial room is registered.
func (s *GameService) CreateRoom(ctx context.Context, gameMasterID string, cfg RoomConfig) (*domain.Room, error) {
	if len(cfg.RoundPlan) == 0 {
		return nil, domain.ErrEmptyRoundPlan
	}
	questionsPerRound := cfg.QuestionsPerRound
	if questionsPerRound <= 0 {
		questionsPerRound = domain.DefaultQuestionsPerRound
	}

	category, questions, err := s.rounds.NextRound(ctx, 0, cfg.RoundPlan, cfg.Mode, questionsPerRound)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuestionGenerationFailed, err)
	}

	room := domain.Room{
		RoomID:            s.rooms.NewRoomID(),
		GameMasterID:      gameMasterID,
		QuestionTimeLimit: cfg.QuestionTimeLimit,
		QuestionsPerRound: questionsPerRound,
		Mode:              cfg.Mode,
		RoundPlan:         append([]int(nil), cfg.RoundPlan...),
		Players:           make(map[string]*domain.Player),
		Progress: domain.Progress{
			CurrentRoundCategory: category,
			CurrentQuestionIndex: 1,
			RoundQuestions:       questions,
		},
	}

	session := NewRoomSession(room)
	s.rooms.Register(session)
	return session.Snapshot(), nil
}

// Join adds a player to a lobby. Joining twice with the same connection
// returns the existing state unchanged. The game master is notified of
// every genuinely new player.
func (s *GameService) Join(roomID, connectionID, name string) (*domain.Room, error) {
	session, ok := s.rooms.Get(roomID)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	session.mu.Lock()
	if session.room.QuizStarted {
		session.mu.Unlock()
		return nil, domain.ErrQuizAlreadyStarted
	}
	if _, exists := session.room.Players[connectionID]; exists {
		snap := session.snapshotLocked()
		session.mu.Unlock()
		return snap, nil
	}
	session.room.Players[connectionID] = &domain.Player{
		Name:                name,
		CurrentRoundAnswers: make(map[int]bool),
	}
	snap := session.snapshotLocked()
	gameMaster := session.room.GameMasterID
	session.mu.Unlock()

	s.bus.Send(gameMaster, domain.Event{
		Type:    domain.EventPlayerJoined,
		Payload: domain.PlayerJoinedPayload{Name: name, Room: snap},
	})
	return snap, nil
}

// StartQuiz moves a lobby into progress. Requires at least one player;
// once started the flag never reverts.
func (s *GameService) StartQuiz(roomID string) (*domain.Room, error) {
	session, ok := s.rooms.Get(roomID)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	session.mu.Lock()
	if session.room.QuizStarted {
		session.mu.Unlock()
		return nil, domain.ErrQuizAlreadyStarted
	}
	if len(session.room.Players) == 0 {
		session.mu.Unlock()
		return nil, domain.ErrNoPlayers
	}
	session.room.QuizStarted = true
	snap := session.snapshotLocked()
	members := session.membersLocked()
	session.mu.Unlock()

	s.broadcast(members, domain.Event{Type: domain.EventQuizStarted, Payload: snap})
	return snap, nil
}

// AdvanceQuestion moves the room to the given 1-based question index.
// The index must exist in the current round's question set.
func (s *GameService) AdvanceQuestion(roomID string, questionIndex int) (*domain.Room, error) {
	session, ok := s.rooms.Get(roomID)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	session.mu.Lock()
	if _, ok := session.room.Progress.RoundQuestions[questionIndex]; !ok {
		session.mu.Unlock()
		return nil, domain.ErrQuestionNotFound
	}
	session.room.Progress.CurrentQuestionIndex = questionIndex
	snap := session.snapshotLocked()
	members := session.membersLocked()
	session.mu.Unlock()

	s.broadcast(members, domain.Event{
		Type:    domain.EventQuestion,
		Payload: domain.QuestionPayload{RoomID: roomID, QuestionIndex: questionIndex},
	})
	return snap, nil
}

// SubmitAnswer validates a player's 1-based answer choice against the
// current question and records correctness. Each question scores at most
// once per player: a repeated submission overwrites the recorded answer
// but never re-increments an already-awarded point, so totalScore stays
// monotone. The game master alone is notified of the outcome.
func (s *GameService) SubmitAnswer(roomID, connectionID string, answerChoice int) (bool, error) {
	session, ok := s.rooms.Get(roomID)
	if !ok {
		return false, domain.ErrRoomNotFound
	}

	session.mu.Lock()
	player, ok := session.room.Players[connectionID]
	if !ok {
		session.mu.Unlock()
		return false, domain.ErrPlayerNotFound
	}
	index := session.room.Progress.CurrentQuestionIndex
	question, ok := session.room.Progress.RoundQuestions[index]
	if !ok {
		session.mu.Unlock()
		return false, domain.ErrNoActiveQuestion
	}
	if answerChoice < 1 || answerChoice > len(question.AllAnswers) {
		session.mu.Unlock()
		return false, domain.ErrInvalidAnswerChoice
	}

	chosen := question.AllAnswers[answerChoice-1]
	correct := chosen == question.CorrectAnswer
	alreadyCorrect := player.CurrentRoundAnswers[index]
	player.CurrentRoundAnswers[index] = correct || alreadyCorrect
	if correct && !alreadyCorrect {
		player.CurrentRoundScore++
		player.TotalScore++
	}
	name := player.Name
	gameMaster := session.room.GameMasterID
	session.mu.Unlock()

	s.bus.Send(gameMaster, domain.Event{
		Type: domain.EventPlayerAnswered,
		Payload: domain.PlayerAnsweredPayload{
			ConnectionID: connectionID,
			Name:         name,
			Answer:       chosen,
			Correct:      correct,
		},
	})
	return correct, nil
}

// EndOfRound recomputes both ranking dimensions and sends every player
// their own updated record individually.
func (s *GameService) EndOfRound(roomID string) (*domain.Room, error) {
	return s.settle(roomID, domain.EventRoundResult)
}

// EndOfGame mirrors EndOfRound with a terminal notification type. It does
// not block further operations on the room.
func (s *GameService) EndOfGame(roomID string) (*domain.Room, error) {
	return s.settle(roomID, domain.EventGameResult)
}

func (s *GameService) settle(roomID, eventType string) (*domain.Room, error) {
	session, ok := s.rooms.Get(roomID)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	session.mu.Lock()
	roundScores := make(map[string]int, len(session.room.Players))
	totalScores := make(map[string]int, len(session.room.Players))
	for id, p := range session.room.Players {
		roundScores[id] = p.CurrentRoundScore
		totalScores[id] = p.TotalScore
	}
	roundRanks := Rank(roundScores)
	overallRanks := Rank(totalScores)
	for id, p := range session.room.Players {
		p.EndOfRoundRank = roundRanks[id]
		p.OverallRank = overallRanks[id]
	}
	snap := session.snapshotLocked()
	session.mu.Unlock()

	for id, p := range snap.Players {
		s.bus.Send(id, domain.Event{
			Type:    eventType,
			Payload: domain.PlayerResultPayload{RoomID: roomID, Player: p},
		})
	}
	return snap, nil
}

// NextRound advances the room to the next planned category. Only one
// round generation may be outstanding per room; a second call while the
// fetch is pending is rejected. The room keeps its prior question set
// until the new one has fully materialized, then every player's round
// state resets (total score and overall rank persist across rounds).
func (s *GameService) NextRound(ctx context.Context, roomID string) (*domain.Room, error) {
	session, ok := s.rooms.Get(roomID)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	session.mu.Lock()
	if session.roundInFlight {
		session.mu.Unlock()
		return nil, domain.ErrRoundGenerationInFlight
	}
	session.roundInFlight = true
	current := session.room.Progress.CurrentRoundCategory
	plan := append([]int(nil), session.room.RoundPlan...)
	mode := session.room.Mode
	count := session.room.QuestionsPerRound
	session.mu.Unlock()

	category, questions, err := s.rounds.NextRound(ctx, current, plan, mode, count)

	session.mu.Lock()
	session.roundInFlight = false
	if err != nil {
		// Last-known-good questions stay in place.
		session.mu.Unlock()
		return nil, err
	}
	session.room.Progress.CurrentRoundCategory = category
	session.room.Progress.CurrentQuestionIndex = 1
	session.room.Progress.RoundQuestions = questions
	for _, p := range session.room.Players {
		p.CurrentRoundScore = 0
		p.CurrentRoundAnswers = make(map[int]bool)
		p.EndOfRoundRank = 0
	}
	snap := session.snapshotLocked()
	members := session.membersLocked()
	session.mu.Unlock()

	categoryName, _ := domain.CategoryName(category)
	s.broadcast(members, domain.Event{
		Type:    domain.EventRoundStarted,
		Payload: domain.RoundStartedPayload{Room: snap, CategoryName: categoryName},
	})
	return snap, nil
}

// Room returns a snapshot of the identified room.
func (s *GameService) Room(roomID string) (*domain.Room, error) {
	session, ok := s.rooms.Get(roomID)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return session.Snapshot(), nil
}

func (s *GameService) broadcast(members []string, event domain.Event) {
	for _, id := range members {
		s.bus.Send(id, event)
	}
}
