package models

// Product is a catalog entry as the storefront presents it. Keywords are the
// lowercase terms a shopper's message is matched against.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Keywords []string `json:"keywords,omitempty"`
}
