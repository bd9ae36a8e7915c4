package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Group collapses identical configurations into one display line. Two
// items belong together when product, size, flavors, add-ons and bundle
// contents all match; the frozen price is not part of the key.
type Group struct {
	Key   string `json:"key"`
	Item  Item   `json:"item"`
	Count int    `json:"cantidad"`

	items []Item
}

// Items returns the underlying cart entries of the group in cart order.
func (g Group) Items() []Item {
	return g.items
}

// Subtotal sums the group's frozen item prices.
func (g Group) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range g.items {
		total = total.Add(parsePrice(item.Precio))
	}
	return total
}

// GroupKey derives the identity of an item's configuration.
func GroupKey(item Item) string {
	key := struct {
		ID        int64        `json:"id"`
		Tamanio   string       `json:"tamanio"`
		Sabores   []string     `json:"sabores"`
		Agregados []string     `json:"agregados"`
		Productos []BundleLine `json:"productos"`
	}{item.ProductID, item.Tamanio, item.Sabores, item.Agregados, item.Productos}
	encoded, _ := json.Marshal(key)
	return string(encoded)
}

// GroupItems folds a cart into display groups, preserving the order in
// which each configuration first appeared.
func GroupItems(items []Item) []Group {
	index := map[string]int{}
	var groups []Group
	for _, item := range items {
		key := GroupKey(item)
		if i, ok := index[key]; ok {
			groups[i].Count++
			groups[i].items = append(groups[i].items, item)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{Key: key, Item: item, Count: 1, items: []Item{item}})
	}
	return groups
}

// Total sums every frozen item price in the cart.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(parsePrice(item.Precio))
	}
	return total
}

func parsePrice(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return parsed
}
