package configurator

import (
	"strings"

	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/enums"
)

// Regular pizza sizes allow a single flavor only. The ids are a fixed part
// of the catalog contract.
var regularPizzaSizeIDs = map[int64]bool{1: true, 2: true}

// IsRegularPizzaSize reports whether a pizza size forces the principal
// flavor alone.
func IsRegularPizzaSize(sizeID int64) bool {
	return regularPizzaSizeIDs[sizeID]
}

type sizeConstraint int

const (
	constraintNone sizeConstraint = iota
	// constraintLockOriginal restricts the offer to the product's original
	// size and disables reselection.
	constraintLockOriginal
	// constraintDropLast removes the last size of the fetched list from
	// the offer.
	constraintDropLast
	// constraintExclusiveSize makes the named size mutually exclusive with
	// the rest of the list: sole offer when it is the product's original
	// size, absent otherwise.
	constraintExclusiveSize
)

// sizeRule is one catalog-specific selection exception. The catalog does
// not encode these; they key off product names and size names exactly as
// the storefront always has.
type sizeRule struct {
	tipo         enums.ProductType
	nameContains []string
	sizeNamed    string
	constraint   sizeConstraint
}

var sizeRules = []sizeRule{
	{tipo: enums.ProductTypeBebida, nameContains: []string{"fanta"}, constraint: constraintLockOriginal},
	{tipo: enums.ProductTypeBebida, nameContains: []string{"chicha", "maracuya"}, constraint: constraintDropLast},
	{tipo: enums.ProductTypePasta, sizeNamed: "lagsana", constraint: constraintExclusiveSize},
}

func (r sizeRule) matchesProduct(tipo enums.ProductType, productName string) bool {
	if r.tipo != tipo {
		return false
	}
	if len(r.nameContains) == 0 {
		return r.sizeNamed != ""
	}
	name := strings.ToLower(productName)
	for _, fragment := range r.nameContains {
		if strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}

// OfferedSizes applies the selection exceptions for one product and
// returns the sizes the customer may pick plus whether the size choice is
// locked. The input order is preserved; list position matters for the
// add-on size mapping.
func OfferedSizes(tipo enums.ProductType, productName string, originalSizeID int64, sizes []catalog.Size) ([]catalog.Size, bool) {
	for _, rule := range sizeRules {
		if !rule.matchesProduct(tipo, productName) {
			continue
		}
		switch rule.constraint {
		case constraintLockOriginal:
			return filterSizes(sizes, func(s catalog.Size) bool { return s.ID == originalSizeID }), true
		case constraintDropLast:
			if len(sizes) > 0 {
				return sizes[:len(sizes)-1], false
			}
			return sizes, false
		case constraintExclusiveSize:
			exclusive := findSizeNamed(sizes, rule.sizeNamed)
			if exclusive == nil {
				continue
			}
			if exclusive.ID == originalSizeID {
				return filterSizes(sizes, func(s catalog.Size) bool { return s.ID == exclusive.ID }), true
			}
			return filterSizes(sizes, func(s catalog.Size) bool { return s.ID != exclusive.ID }), false
		}
	}
	return sizes, false
}

func filterSizes(sizes []catalog.Size, keep func(catalog.Size) bool) []catalog.Size {
	filtered := make([]catalog.Size, 0, len(sizes))
	for _, size := range sizes {
		if keep(size) {
			filtered = append(filtered, size)
		}
	}
	return filtered
}

func findSizeNamed(sizes []catalog.Size, name string) *catalog.Size {
	for i := range sizes {
		if strings.EqualFold(sizes[i].Nombre, name) {
			return &sizes[i]
		}
	}
	return nil
}
