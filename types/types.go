package types

const (
	TypeWebsocketAsk     = "ask"
	TypeWebsocketChunk   = "chunk"
	TypeWebsocketDone    = "done"
	TypeWebsocketError   = "error"
	TypeWebsocketPing    = "ping"
	TypeWebsocketPong    = "pong"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketAskPayload struct {
	Text     string `json:"text"`
	Filename string `json:"filename,omitempty"`
}

type WebsocketChunkPayload struct {
	Content string `json:"content"`
}

type WebsocketDonePayload struct {
	Sources []SourceInfo `json:"sources"`
}

// Message represents a single message in a generation exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Handle stream responses
type StreamHandler func(response string)
