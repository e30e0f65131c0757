package stub

import "shopassist/internal/models"

// Catalog returns the storefront's demo products with the lowercase terms
// shoppers actually use for them. Category words appear on every product in
// that category so "kitchen" matches more than one item.
func Catalog() []models.Product {
	return []models.Product{
		{ID: "OLJCESPC7Z", Name: "Sunglasses", Price: "$19.99", Keywords: []string{"sunglasses", "accessories"}},
		{ID: "66VCHSJNUP", Name: "Tank Top", Price: "$18.99", Keywords: []string{"tank top", "clothing"}},
		{ID: "1YMWWN1N4O", Name: "Watch", Price: "$109.99", Keywords: []string{"watch", "accessories"}},
		{ID: "L9ECAV7KIM", Name: "Loafers", Price: "$89.99", Keywords: []string{"loafers", "footwear"}},
		{ID: "2ZYFJ3GM2N", Name: "Hairdryer", Price: "$24.99", Keywords: []string{"hairdryer", "hair", "beauty"}},
		{ID: "0PUK6V6EV0", Name: "Candle Holder", Price: "$18.99", Keywords: []string{"candle holder", "decor", "home"}},
		{ID: "LS4PSXUNUM", Name: "Salt & Pepper Shakers", Price: "$8.49", Keywords: []string{"salt", "pepper", "kitchen"}},
		{ID: "9SIQT8TOJO", Name: "Bamboo Glass Jar", Price: "$5.49", Keywords: []string{"bamboo", "glass jar", "kitchen", "home"}},
		{ID: "6E92ZMYYFZ", Name: "Mug", Price: "$8.99", Keywords: []string{"mug", "kitchen"}},
	}
}
