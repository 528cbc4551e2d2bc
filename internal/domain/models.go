package domain

// Mode selects question difficulty for a whole room.
type Mode int

const (
	ModeEasy   Mode = 1
	ModeMedium Mode = 2
	ModeHard   Mode = 3
	ModeKids   Mode = 4 // kids mode serves easy questions
)

// Difficulty is the provider-facing difficulty string.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyFor maps a room mode onto a provider difficulty.
// Unrecognized modes fall back to easy.
func DifficultyFor(mode Mode) Difficulty {
	switch mode {
	case ModeMedium:
		return DifficultyMedium
	case ModeHard:
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// Question is one multiple-choice question as exposed to a room.
// AllAnswers contains the correct answer and every incorrect answer in a
// pre-shuffled order; it is never mutated after the round materializes.
type Question struct {
	Prompt        string   `json:"prompt"`
	CorrectAnswer string   `json:"correctAnswer"`
	AllAnswers    []string `json:"allAnswers"`
}

// SourceQuestion is the raw shape returned by a question provider before
// the answer set is shuffled.
type SourceQuestion struct {
	Prompt           string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// Player tracks one connection's standing inside a room.
type Player struct {
	Name                string       `json:"name"`
	CurrentRoundScore   int          `json:"currentRoundScore"`
	TotalScore          int          `json:"totalScore"`
	CurrentRoundAnswers map[int]bool `json:"currentRoundAnswers"`
	EndOfRoundRank      int          `json:"endOfRoundRank,omitempty"`
	OverallRank         int          `json:"overallRank,omitempty"`
}

// Progress records where a room is inside its current round.
// CurrentQuestionIndex is 1-based and always refers to a key present in
// RoundQuestions once a round exists.
type Progress struct {
	CurrentRoundCategory int              `json:"currentRoundCategory,omitempty"`
	CurrentQuestionIndex int              `json:"currentQuestionIndex"`
	RoundQuestions       map[int]Question `json:"roundQuestions,omitempty"`
}

// Room is the full authoritative state of one trivia session.
type Room struct {
	RoomID            string             `json:"roomId"`
	GameMasterID      string             `json:"-"`
	QuestionTimeLimit int                `json:"questionTimeLimit"`
	QuestionsPerRound int                `json:"questionsPerRound"`
	Mode              Mode               `json:"mode"`
	RoundPlan         []int              `json:"roundPlan"`
	Players           map[string]*Player `json:"players"`
	QuizStarted       bool               `json:"quizStarted"`
	Progress          Progress           `json:"progress"`
}

// DefaultQuestionsPerRound applies when room creation omits the value.
const DefaultQuestionsPerRound = 5

// Event is an outbound notification addressed to a single connection.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Notification types delivered through the messaging interface.
const (
	EventPlayerJoined   = "playerJoined"   // to game master
	EventPlayerAnswered = "playerAnswered" // to game master
	EventQuizStarted    = "quizStarted"    // broadcast
	EventQuestion       = "question"       // broadcast, new question index
	EventRoundStarted   = "roundStarted"   // broadcast
	EventRoundResult    = "roundResult"    // per player
	EventGameResult     = "gameResult"     // per player
)

// PlayerJoinedPayload accompanies EventPlayerJoined.
type PlayerJoinedPayload struct {
	Name string `json:"name"`
	Room *Room  `json:"room"`
}

// PlayerAnsweredPayload accompanies EventPlayerAnswered.
type PlayerAnsweredPayload struct {
	ConnectionID string `json:"connectionId"`
	Name         string `json:"name"`
	Answer       string `json:"answer"`
	Correct      bool   `json:"correct"`
}

// QuestionPayload accompanies EventQuestion.
type QuestionPayload struct {
	RoomID        string `json:"roomId"`
	QuestionIndex int    `json:"questionIndex"`
}

// PlayerResultPayload accompanies EventRoundResult and EventGameResult.
type PlayerResultPayload struct {
	RoomID string  `json:"roomId"`
	Player *Player `json:"player"`
}

// RoundStartedPayload accompanies EventRoundStarted.
type RoundStartedPayload struct {
	Room         *Room  `json:"room"`
	CategoryName string `json:"categoryName,omitempty"`
}
