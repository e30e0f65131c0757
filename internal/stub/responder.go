// Package stub is a deterministic stand-in for the shopping-assistant
// service. It answers the same /chat and /health contract from a fixed
// catalog, which makes it usable for local development and for exercising
// everything that sits in front of the real service.
package stub

import (
	"fmt"
	"strings"

	"shopassist/internal/models"
)

type Responder struct {
	catalog []models.Product
}

func NewResponder() *Responder {
	return &Responder{catalog: Catalog()}
}

// Reply builds the assistant record for one message. Keyword hits select
// products; their ids ride both in recommended_products and in square
// brackets at the end of the text, the way the real assistant annotates its
// replies. Without a hit the reply is a generic browse prompt and the whole
// catalog counts as considered.
func (r *Responder) Reply(message string, history []string) models.ChatResponse {
	matched := r.match(message)

	var reply strings.Builder
	if len(history) > 0 {
		reply.WriteString("Welcome back! ")
	}

	if len(matched) == 0 {
		reply.WriteString("I can help you browse our catalog. Tell me what you're shopping for, like sunglasses, kitchen items, or clothing.")
		return models.ChatResponse{
			Success:                 true,
			Response:                reply.String(),
			RecommendedProducts:     []string{},
			TotalProductsConsidered: len(r.catalog),
		}
	}

	names := make([]string, 0, len(matched))
	ids := make([]string, 0, len(matched))
	for _, p := range matched {
		names = append(names, fmt.Sprintf("%s (%s)", p.Name, p.Price))
		ids = append(ids, p.ID)
	}

	reply.WriteString("You might like " + strings.Join(names, ", ") + ".")
	for _, id := range ids {
		reply.WriteString(" [" + id + "]")
	}

	return models.ChatResponse{
		Success:                 true,
		Response:                reply.String(),
		RecommendedProducts:     ids,
		TotalProductsConsidered: len(matched),
	}
}

// match returns catalog products whose keywords occur in the message, in
// catalog order, each at most once.
func (r *Responder) match(message string) []models.Product {
	lower := strings.ToLower(message)

	var matched []models.Product
	for _, p := range r.catalog {
		for _, kw := range p.Keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}
