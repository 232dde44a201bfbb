package types

type AskRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename,omitempty"`
}
