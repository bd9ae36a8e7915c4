package configurator

import (
	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/enums"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/shopspring/decimal"
)

// Selection is the customer's current configurator state.
type Selection struct {
	SizeID    int64   `json:"tamanio_id"`
	FlavorIDs []int64 `json:"sabor_ids"`
	AddonIDs  []int64 `json:"agregado_ids"`
}

// AddonOption is an extra topping offered at the currently mapped add-on
// size, with its resolved unit price.
type AddonOption struct {
	catalog.Flavor
	Precio string `json:"precio"`
}

// View is everything a product detail page needs to render its selectors.
type View struct {
	ProductID   int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Imagen      string `json:"imagen"`

	Combination bool `json:"combinacion"`
	SizeLocked  bool `json:"tamanio_bloqueado"`
	MaxFlavors  int  `json:"max_sabores"`

	Sizes             []catalog.Size   `json:"tamanios"`
	ClassicFlavors    []catalog.Flavor `json:"sabores_clasicos"`
	SpecialtyFlavors  []catalog.Flavor `json:"sabores_especiales"`
	PrincipalFlavorID int64            `json:"sabor_principal_id"`
	Addons            []AddonOption    `json:"agregados"`

	Initial      Selection `json:"seleccion_inicial"`
	InitialPrice string    `json:"precio_inicial"`
}

// Options derives the initial configurator view for one product.
func Options(tipo enums.ProductType, data *catalog.ConfiguratorData) (*View, error) {
	product := data.Product
	pairing := product.OriginalPairing()
	if pairing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product has no size/flavor pairing").
			WithDetails(map[string]any{"producto_id": product.ID})
	}

	view := &View{
		ProductID:   product.ID,
		Nombre:      product.Nombre,
		Descripcion: product.Descripcion,
		Imagen:      product.Imagen,
		Combination: product.IsCombination(),
		MaxFlavors:  1,
	}

	initial := Selection{SizeID: pairing.TamanioID}
	if product.IsCombination() {
		for _, leg := range product.Combinaciones {
			initial.FlavorIDs = append(initial.FlavorIDs, leg.TamanioSabor.SaborID)
		}
		view.SizeLocked = true
		view.Sizes = data.Sizes
	} else {
		initial.FlavorIDs = []int64{pairing.SaborID}
		offered, locked := OfferedSizes(tipo, product.Nombre, pairing.TamanioID, data.Sizes)
		view.Sizes = offered
		view.SizeLocked = locked
	}
	view.PrincipalFlavorID = pairing.SaborID
	view.Initial = initial

	if tipo == enums.ProductTypePizza && !product.IsCombination() && !IsRegularPizzaSize(initial.SizeID) {
		view.MaxFlavors = 2
	}

	for _, flavor := range data.Flavors {
		if flavor.Especial {
			view.SpecialtyFlavors = append(view.SpecialtyFlavors, flavor)
		} else {
			view.ClassicFlavors = append(view.ClassicFlavors, flavor)
		}
	}

	view.Addons = availableAddons(data, initial.SizeID)

	// Initial price comes from the stored pairing, then one quote pass so
	// the displayed number always went through the same resolution path.
	previous := parsePrice(product.Precio)
	if !product.IsCombination() {
		previous = parsePrice(pairing.Precio)
	}
	view.InitialPrice = Quote(tipo, data, initial, previous).StringFixed(2)

	return view, nil
}

// Quote resolves the total price for a selection. A zero result keeps the
// previous price on screen instead: a lookup miss must never surface as
// S/ 0.00.
func Quote(tipo enums.ProductType, data *catalog.ConfiguratorData, sel Selection, previous decimal.Decimal) decimal.Decimal {
	total := basePrice(data.Product, data.Prices, sel)
	if tipo.HasAddons() {
		total = total.Add(addonTotal(data, sel.SizeID, sel.AddonIDs))
	}
	if total.IsPositive() {
		return total
	}
	return previous
}

// AdjustFlavorsForSize re-normalizes a flavor selection after a size
// change on a single-flavor pizza: regular sizes fall back to the
// principal flavor alone; other sizes keep the selection when it still
// includes the principal, otherwise principal plus at most one more.
func AdjustFlavorsForSize(product catalog.Product, sizeID int64, flavorIDs []int64) []int64 {
	if product.IsCombination() {
		ids := make([]int64, 0, len(product.Combinaciones))
		for _, leg := range product.Combinaciones {
			ids = append(ids, leg.TamanioSabor.SaborID)
		}
		return ids
	}

	pairing := product.OriginalPairing()
	if pairing == nil {
		return flavorIDs
	}
	principal := pairing.SaborID

	if IsRegularPizzaSize(sizeID) {
		return []int64{principal}
	}
	if containsID(flavorIDs, principal) {
		if len(flavorIDs) > 2 {
			return flavorIDs[:2]
		}
		return flavorIDs
	}
	adjusted := []int64{principal}
	for _, id := range flavorIDs {
		if id != principal {
			adjusted = append(adjusted, id)
			break
		}
	}
	return adjusted
}

func basePrice(product catalog.Product, prices []catalog.SizeFlavorPrice, sel Selection) decimal.Decimal {
	// Combination pizzas price from the product row itself, never from the
	// per-flavor table.
	if product.IsCombination() {
		return parsePrice(product.Precio)
	}

	switch len(sel.FlavorIDs) {
	case 1:
		return lookupPrice(prices, sel.SizeID, sel.FlavorIDs[0])
	case 2:
		first := lookupPrice(prices, sel.SizeID, sel.FlavorIDs[0])
		second := lookupPrice(prices, sel.SizeID, sel.FlavorIDs[1])
		// Two flavors price as the dearer of the two.
		if second.GreaterThan(first) {
			return second
		}
		return first
	}
	return decimal.Zero
}

// addonSizeFor maps a product size to its add-on size bucket by list
// position. The backend keeps both lists in the same order; the ordinal
// is the only link between them, so it is resolved in exactly one place.
func addonSizeFor(sizes []catalog.Size, sizeID int64, addonSizes []catalog.Size) (catalog.Size, bool) {
	for i, size := range sizes {
		if size.ID == sizeID {
			if i < len(addonSizes) {
				return addonSizes[i], true
			}
			return catalog.Size{}, false
		}
	}
	return catalog.Size{}, false
}

func addonTotal(data *catalog.ConfiguratorData, sizeID int64, addonIDs []int64) decimal.Decimal {
	if len(addonIDs) == 0 {
		return decimal.Zero
	}
	addonSize, ok := addonSizeFor(data.Sizes, sizeID, data.AddonSizes)
	if !ok {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, addonID := range addonIDs {
		total = total.Add(lookupPrice(data.Prices, addonSize.ID, addonID))
	}
	return total
}

// availableAddons returns the add-ons that have a price row at the add-on
// size mapped from the given product size.
func availableAddons(data *catalog.ConfiguratorData, sizeID int64) []AddonOption {
	if len(data.Addons) == 0 {
		return nil
	}
	addonSize, ok := addonSizeFor(data.Sizes, sizeID, data.AddonSizes)
	if !ok {
		return nil
	}
	var options []AddonOption
	for _, addon := range data.Addons {
		price, found := findPrice(data.Prices, addonSize.ID, addon.ID)
		if !found {
			continue
		}
		options = append(options, AddonOption{Flavor: addon, Precio: price.StringFixed(2)})
	}
	return options
}

func findPrice(prices []catalog.SizeFlavorPrice, sizeID, flavorID int64) (decimal.Decimal, bool) {
	for _, row := range prices {
		if row.TamanioID == sizeID && row.SaborID == flavorID {
			return parsePrice(row.Precio), true
		}
	}
	return decimal.Zero, false
}

// lookupPrice resolves a price row; a missing row contributes zero, which
// the quote-level guard then absorbs.
func lookupPrice(prices []catalog.SizeFlavorPrice, sizeID, flavorID int64) decimal.Decimal {
	price, _ := findPrice(prices, sizeID, flavorID)
	return price
}

func parsePrice(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return parsed
}

func containsID(ids []int64, target int64) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
