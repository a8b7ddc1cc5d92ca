package handler

import (
	"log"
	"net/http"

	"voicenotes-server/internal/capture"
	"voicenotes-server/internal/service"

	ws "github.com/gorilla/websocket"
)

// CaptureHandler runs one speech capture session per WebSocket connection.
// The browser relays raw recognition events; the session accumulates the
// transcript and commits it as a note on an explicit stop.
type CaptureHandler struct {
	service  *service.NoteService
	language string
	upgrader ws.Upgrader
}

func NewCaptureHandler(service *service.NoteService, language string, readBufferSize, writeBufferSize int) *CaptureHandler {
	return &CaptureHandler{
		service:  service,
		language: language,
		upgrader: ws.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *CaptureHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("capture upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := capture.NewSession()

	if err := h.write(conn, capture.TypeReady, capture.ReadyPayload{Language: h.language}); err != nil {
		return
	}

	for {
		var msg capture.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ws.IsUnexpectedCloseError(err, ws.CloseGoingAway, ws.CloseNormalClosure, ws.CloseNoStatusReceived) {
				log.Printf("capture connection error: %v", err)
			}
			return
		}

		switch msg.Type {
		case capture.TypeStart:
			if err := session.Start(); err != nil {
				h.writeError(conn, err.Error())
			}

		case capture.TypeResult:
			var payload capture.ResultPayload
			if err := msg.UnmarshalPayload(&payload); err != nil {
				h.writeError(conn, "invalid result payload")
				continue
			}
			transcript, err := session.Result(payload.Segments)
			if err != nil {
				h.writeError(conn, err.Error())
				continue
			}
			if err := h.write(conn, capture.TypeTranscript, capture.TranscriptPayload{Text: transcript}); err != nil {
				return
			}

		case capture.TypeStop:
			text, ok := session.Stop()
			if !ok {
				continue
			}
			note, err := h.service.Create(text)
			if err != nil {
				h.writeError(conn, err.Error())
				continue
			}
			if err := h.write(conn, capture.TypeCommitted, note); err != nil {
				return
			}

		case capture.TypeEnd:
			session.End()

		default:
			h.writeError(conn, "unknown message type")
		}
	}
}

func (h *CaptureHandler) write(conn *ws.Conn, msgType capture.MessageType, payload interface{}) error {
	msg, err := capture.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func (h *CaptureHandler) writeError(conn *ws.Conn, message string) {
	if err := h.write(conn, capture.TypeError, capture.ErrorPayload{Message: message}); err != nil {
		log.Printf("failed to write capture error: %v", err)
	}
}
