package domain

import "errors"

var (
	// ErrRoomNotFound is returned when a room code does not resolve.
	ErrRoomNotFound = errors.New("room not found")
	// ErrQuizAlreadyStarted rejects joins after the quiz has begun.
	ErrQuizAlreadyStarted = errors.New("quiz already started")
	// ErrNoPlayers rejects starting a quiz in an empty lobby.
	ErrNoPlayers = errors.New("no players in room")
	// ErrPlayerNotFound is returned when a connection acts before joining.
	ErrPlayerNotFound = errors.New("player not found in room")
	// ErrNoActiveQuestion is returned when an answer arrives before any
	// round has materialized.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrQuestionNotFound indicates a question index outside the current round.
	ErrQuestionNotFound = errors.New("question not found in current round")
	// ErrInvalidAnswerChoice indicates an answer choice outside the
	// question's answer set.
	ErrInvalidAnswerChoice = errors.New("invalid answer choice")
	// ErrRoundGenerationFailed wraps question provider failures during a
	// round advance.
	ErrRoundGenerationFailed = errors.New("round generation failed")
	// ErrQuestionGenerationFailed wraps provider failures during room
	// creation; no partial room is registered.
	ErrQuestionGenerationFailed = errors.New("question generation failed")
	// ErrRoundPlanExhausted signals the round plan has no further
	// category. Terminal, not a failure.
	ErrRoundPlanExhausted = errors.New("round plan exhausted")
	// ErrRoundGenerationInFlight rejects a round advance while another
	// one is still fetching questions for the same room.
	ErrRoundGenerationInFlight = errors.New("round generation already in flight")
	// ErrEmptyRoundPlan rejects room creation without any category.
	ErrEmptyRoundPlan = errors.New("round plan must contain at least one category")
)
