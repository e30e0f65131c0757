// Package session keeps per-session chat transcripts on the gateway side so
// stateless widget embeds share one conversation per shopper.
package session

import "context"

// Store persists a session's transcript lines. Implementations keep append
// order and treat an unknown session as an empty one.
type Store interface {
	// History returns every stored line for the session, oldest first.
	History(ctx context.Context, sessionID string) ([]string, error)

	// AppendExchange stores one completed exchange, user line first.
	AppendExchange(ctx context.Context, sessionID, userLine, assistantLine string) error

	// Clear removes the session's transcript.
	Clear(ctx context.Context, sessionID string) error
}
