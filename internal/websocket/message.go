package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/league-matchmaker/internal/domain"
)

type MessageType string

const (
	// Server to Client
	MessageTypeMatchCreated  MessageType = "MATCH_CREATED"
	MessageTypeMatchReported MessageType = "MATCH_REPORTED"
	MessageTypeError         MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Seq       int             `json:"seq,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// MatchPayload carries a match and, for reported matches, the epoch the driver moves to
type MatchPayload struct {
	Match     *domain.MatchResult `json:"match"`
	NextEpoch *string             `json:"nextEpoch,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
