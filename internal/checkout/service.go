package checkout

import (
	"context"
	"strings"

	"github.com/jhonvillanueva44/mammapizza-api/internal/cart"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/enums"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

// Service turns a session cart into a WhatsApp handoff. There is no
// order persistence: the message is the order.
type Service struct {
	carts  *cart.Service
	number string
	logger *logger.Logger
}

func NewService(carts *cart.Service, whatsappNumber string, logg *logger.Logger) *Service {
	return &Service{carts: carts, number: whatsappNumber, logger: logg}
}

// Request is the customer's checkout form.
type Request struct {
	Nombre    string `json:"nombre" validate:"required"`
	Entrega   string `json:"entrega" validate:"required,oneof=recoger delivery"`
	Direccion string `json:"direccion"`
}

// Result is the composed handoff returned to the storefront.
type Result struct {
	Message string `json:"mensaje"`
	Links   Links  `json:"links"`
	Link    string `json:"link"`
	Total   string `json:"total"`
}

// Checkout validates the form, builds the message and links, and clears
// the cart. Clearing is optimistic: it happens before anyone knows
// whether the customer actually sent the message.
func (s *Service) Checkout(ctx context.Context, sessionID, userAgent string, req Request) (*Result, error) {
	name := strings.TrimSpace(req.Nombre)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	delivery := enums.DeliveryMethod(req.Entrega)
	if !delivery.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery method").
			WithDetails(map[string]any{"entrega": req.Entrega})
	}
	address := strings.TrimSpace(req.Direccion)
	if delivery == enums.DeliveryDelivery && address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}

	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := Order{
		CustomerName: name,
		Delivery:     delivery,
		Address:      address,
		Groups:       cart.GroupItems(items),
		Items:        items,
	}
	message := BuildMessage(order)
	links := BuildLinks(s.number, message)

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}

	ctx = s.logger.WithSessionID(ctx, sessionID)
	ctx = s.logger.WithFields(ctx, map[string]any{"items": len(items), "entrega": string(delivery)})
	s.logger.Info(ctx, "order handed off to whatsapp")

	return &Result{
		Message: message,
		Links:   links,
		Link:    PreferredLink(links, userAgent),
		Total:   cart.Total(items).StringFixed(2),
	}, nil
}
