package service

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"pdf-rag-be/types"
)

// WebSocketService streams question answers over a websocket: the client
// sends ask requests and receives answer chunks as they are generated,
// followed by a done message carrying the sources.
type WebSocketService struct {
	rag      *RAGService
	upgrader websocket.Upgrader
}

func NewWebSocketService(rag *RAGService) *WebSocketService {
	return &WebSocketService{
		rag: rag,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleAsk(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	// Set connection properties
	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, messageType, "Error processing message")
			log.Println("Unmarshal error:", err)
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			s.writeResponse(conn, messageType, types.WebsocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketAsk:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, messageType, "Error processing message")
				continue
			}
			var payload types.WebsocketAskPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				s.writeError(conn, messageType, "Error processing message")
				continue
			}
			if payload.Text == "" {
				s.writeError(conn, messageType, "Question text is required")
				continue
			}

			sources, err := s.rag.AskStream(r.Context(), payload.Text, payload.Filename, func(chunk string) {
				s.writeResponse(conn, messageType, types.WebsocketResponse{
					Type:    types.TypeWebsocketChunk,
					Payload: types.WebsocketChunkPayload{Content: chunk},
				})
			})
			if err != nil {
				s.writeError(conn, messageType, err.Error())
				continue
			}
			s.writeResponse(conn, messageType, types.WebsocketResponse{
				Type:    types.TypeWebsocketDone,
				Payload: types.WebsocketDonePayload{Sources: sources},
			})
		default:
			s.writeError(conn, messageType, "Unknown message type: "+req.Type)
		}
	}
}

func (s *WebSocketService) writeResponse(conn *websocket.Conn, messageType int, resp types.WebsocketResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Println("Marshal error:", err)
		return
	}
	if err := conn.WriteMessage(messageType, data); err != nil {
		log.Println("Write error:", err)
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, messageType int, message string) {
	s.writeResponse(conn, messageType, types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: message,
	})
}
