package capture

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Client to server.
	TypeStart  MessageType = "start"
	TypeResult MessageType = "result"
	TypeStop   MessageType = "stop"
	TypeEnd    MessageType = "end"

	// Server to client.
	TypeReady      MessageType = "ready"
	TypeTranscript MessageType = "transcript"
	TypeCommitted  MessageType = "committed"
	TypeError      MessageType = "error"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type ReadyPayload struct {
	Language string `json:"language"`
}

type ResultPayload struct {
	Segments []Segment `json:"segments"`
}

type TranscriptPayload struct {
	Text string `json:"text"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		bytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = bytes
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Payload:   payloadBytes,
	}, nil
}

func (m *Message) UnmarshalPayload(v interface{}) error {
	if m.Payload == nil {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}
