package cart

// BundleLine is one constituent of a promotion as it sits in the cart.
type BundleLine struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}

// Item is a single cart entry with its price frozen at add time. Prices
// never get recomputed from the catalog once an item is in the cart.
type Item struct {
	ProductID int64        `json:"id"`
	Titulo    string       `json:"titulo"`
	Imagen    string       `json:"imagen"`
	Precio    string       `json:"precio"`
	Tamanio   string       `json:"tamanio,omitempty"`
	Sabores   []string     `json:"sabores,omitempty"`
	Agregados []string     `json:"agregados,omitempty"`
	Productos []BundleLine `json:"productos,omitempty"`
	ItemID    string       `json:"itemId"`
}
