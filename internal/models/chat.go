package models

// Role prefixes for transcript lines. The assistant service receives history
// as plain prefixed strings, not structured messages.
const (
	UserPrefix      = "User: "
	AssistantPrefix = "Assistant: "
)

// UserLine formats a raw user message as a transcript line.
func UserLine(text string) string {
	return UserPrefix + text
}

// AssistantLine formats a raw assistant reply as a transcript line.
func AssistantLine(text string) string {
	return AssistantPrefix + text
}

// ChatRequest is the payload sent to the assistant service's /chat endpoint.
// History carries the most recent transcript lines, oldest first. An empty
// history must serialize as [] rather than null.
type ChatRequest struct {
	Message string   `json:"message"`
	History []string `json:"history"`
}

// ChatResponse is the assistant service's reply. Fields the service omits
// decode to their zero values and are passed through as-is.
type ChatResponse struct {
	Success                 bool     `json:"success"`
	Response                string   `json:"response"`
	RecommendedProducts     []string `json:"recommended_products"`
	TotalProductsConsidered int      `json:"total_products_considered"`
}

// FallbackMessage is shown whenever a chat exchange cannot complete.
const FallbackMessage = "I'm sorry, I'm having trouble processing your request right now. Please try again later."

// FallbackResponse is the degraded-service record returned in place of an
// error when the assistant cannot be reached or its reply cannot be read.
func FallbackResponse() ChatResponse {
	return ChatResponse{
		Success:                 false,
		Response:                FallbackMessage,
		RecommendedProducts:     []string{},
		TotalProductsConsidered: 0,
	}
}

// GatewayChatRequest is what the storefront widget posts to the gateway. It
// extends the service shape with an optional session id; when History is nil
// the gateway substitutes the stored session history.
type GatewayChatRequest struct {
	Message   string   `json:"message"`
	History   []string `json:"history,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
}

// BotRequest and BotResponse are the legacy page-endpoint shapes kept for
// storefront templates that predate the widget.
type BotRequest struct {
	Message string   `json:"message"`
	History []string `json:"history,omitempty"`
}

type BotResponse struct {
	Message string `json:"message"`
}

// HistoryResponse is returned by the gateway's history endpoint.
type HistoryResponse struct {
	SessionID string   `json:"session_id"`
	History   []string `json:"history"`
}
