package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ukkpower/Netflix-Trivia/internal/app"
	"github.com/ukkpower/Netflix-Trivia/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	hub      *Hub
	upgrader websocket.Upgrader

	// Configured fallback for createRoom payloads that omit
	// questionsPerRound. Zero defers to the domain default.
	defaultQuestionsPerRound int
}

func NewWSHandler(service *app.GameService, hub *Hub, defaultQuestionsPerRound int) *WSHandler {
	return &WSHandler{
		service:                  service,
		hub:                      hub,
		defaultQuestionsPerRound: defaultQuestionsPerRound,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type createRoomPayload struct {
	QuestionTimeLimit int         `json:"questionTimeLimit"`
	QuestionsPerRound int         `json:"questionsPerRound"`
	RoundPlan         []int       `json:"roundPlan"`
	Mode              domain.Mode `json:"mode"`
}

type joinRoomPayload struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type roomPayload struct {
	RoomID string `json:"roomId"`
}

type advanceQuestionPayload struct {
	RoomID     string `json:"roomId"`
	QuestionID int    `json:"questionId"`
}

type submitAnswerPayload struct {
	RoomID string `json:"roomId"`
	Answer int    `json:"answer"`
}

type confirmationPayload struct {
	Message string `json:"message"`
}

type answerConfirmation struct {
	Message string `json:"message"`
	Correct bool   `json:"correct"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and processes inbound game events until
// the connection drops. Every reply and notification flows through the
// hub's writer pump for this connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID, cleanup := h.hub.Register(conn)
	defer cleanup()

	h.hub.Send(connID, domain.Event{Type: "connected", Payload: map[string]string{"connectionId": connID}})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		h.dispatch(r, connID, inbound)
	}
}

func (h *WSHandler) dispatch(r *http.Request, connID string, inbound inboundMessage) {
	switch inbound.Type {
	case "createRoom":
		var payload createRoomPayload
		if !h.decode(connID, inbound.Payload, &payload) {
			return
		}
		if payload.QuestionsPerRound <= 0 {
			payload.QuestionsPerRound = h.defaultQuestionsPerRound
		}
		room, err := h.service.CreateRoom(r.Context(), connID, app.RoomConfig{
			QuestionTimeLimit: payload.QuestionTimeLimit,
			QuestionsPerRound: payload.QuestionsPerRound,
			Mode:              payload.Mode,
			RoundPlan:         payload.RoundPlan,
		})
		h.reply(connID, "roomCreated", room, err)

	case "joinRoom":
		var payload joinRoomPayload
		if !h.decode(connID, inbound.Payload, &payload) {
			return
		}
		room, err := h.service.Join(payload.RoomID, connID, payload.Name)
		h.reply(connID, "joined", room, err)

	case "startQuiz":
		var payload roomPayload
		if !h.decode(connID, inbound.Payload, &payload) {
			return
		}
		_, err := h.service.StartQuiz(payload.RoomID)
		h.reply(connID, "quizStartConfirmed", confirmationPayload{Message: "quiz started"}, err)

	case "advanceQuestion":
		var payload advanceQuestionPayload
		if !h.decode(connID, inbound.Payload, &payload) {
			return
		}
		room, err := h.service.AdvanceQuestion(payload.RoomID, payload.QuestionID)
		h.reply(connID, "questionAdvanced", room, err)

	case "submitAnswer":
		var payload submitAnswerPayload
		if !h.decode(connID, inbound.Payload, &payload) {
			return
		}
		correct, err := h.service.SubmitAnswer(payload.RoomID, connID, payload.Answer)
		h.reply(connID, "answerReceived", answerConfirmation{Message: "answer recorded", Correct: correct}, err)

	case "endRound":
		var payload roomPayload
		if !h.decode(connID, inbound.Payload, &payload) {
			return
		}
		room, err := h.service.EndOfRound(payload.RoomID)
		h.reply(connID, "roundEnded", room, err)

	case "nextRound":
		var payload roomPayload
		if !h.decode(connID, inbound.Payload, &payload) {
			return
		}
		room, err := h.service.NextRound(r.Context(), payload.RoomID)
		h.reply(connID, "roundAdvanced", room, err)

	case "endGame":
		var payload roomPayload
		if !h.decode(connID, inbound.Payload, &payload) {
			return
		}
		room, err := h.service.EndOfGame(payload.RoomID)
		h.reply(connID, "gameEnded", room, err)

	default:
		h.hub.Send(connID, domain.Event{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
	}
}

func (h *WSHandler) decode(connID string, raw json.RawMessage, into any) bool {
	if err := json.Unmarshal(raw, into); err != nil {
		h.hub.Send(connID, domain.Event{Type: "error", Payload: errorPayload{Message: "invalid payload"}})
		return false
	}
	return true
}

func (h *WSHandler) reply(connID, eventType string, payload any, err error) {
	if err != nil {
		h.hub.Send(connID, domain.Event{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	h.hub.Send(connID, domain.Event{Type: eventType, Payload: payload})
}
