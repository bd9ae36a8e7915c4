package checkout

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/jhonvillanueva44/mammapizza-api/internal/cart"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/enums"
	"github.com/shopspring/decimal"
)

var mobileAgent = regexp.MustCompile(`(?i)iPhone|iPad|iPod|Android`)

// Order carries everything needed to compose the WhatsApp handoff.
type Order struct {
	CustomerName string
	Delivery     enums.DeliveryMethod
	Address      string
	Groups       []cart.Group
	Items        []cart.Item
}

// BuildMessage renders the order as the plain-text WhatsApp message, one
// block per grouped item followed by delivery details and the payment
// summary.
func BuildMessage(order Order) string {
	var b strings.Builder
	b.WriteString("Hola MammaPizza, quiero realizar el siguiente pedido:\n\n")
	b.WriteString("*Nombre:* " + order.CustomerName + "\n\n")

	for _, group := range order.Groups {
		writeGroup(&b, group)
	}

	b.WriteString("*Método de entrega:* " + order.Delivery.Label() + "\n")
	if order.Delivery == enums.DeliveryDelivery && order.Address != "" {
		b.WriteString("*Dirección:* " + order.Address + "\n")
	}

	total := cart.Total(order.Items)
	b.WriteString("\n*Resumen de pago:*\n")
	b.WriteString("- Subtotal: S/ " + total.StringFixed(2) + "\n")
	b.WriteString("*Total a pagar: S/ " + total.StringFixed(2) + "*\n\n")
	b.WriteString("Por favor confirmen mi pedido. ¡Gracias!")
	return b.String()
}

func writeGroup(b *strings.Builder, group cart.Group) {
	item := group.Item
	b.WriteString("*" + item.Titulo + "* (" + strconv.Itoa(group.Count) + "x)\n")

	if item.Tamanio != "" {
		b.WriteString("- " + sizeLabel(item.Titulo) + ": " + item.Tamanio + "\n")
	}
	if len(item.Sabores) > 0 {
		b.WriteString("- Sabores: " + strings.Join(item.Sabores, ", ") + "\n")
	}
	if len(item.Agregados) > 0 {
		b.WriteString("- Extras: " + strings.Join(item.Agregados, ", ") + "\n")
	}
	if len(item.Productos) > 0 {
		b.WriteString("- Incluye:\n")
		for _, line := range item.Productos {
			b.WriteString("  • " + line.Nombre + " (" + strconv.Itoa(line.Cantidad) + "x)\n")
		}
	}

	subtotal := parsePrice(item.Precio).Mul(decimal.NewFromInt(int64(group.Count)))
	b.WriteString("- Subtotal: S/ " + subtotal.StringFixed(2) + "\n\n")
}

func parsePrice(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return parsed
}

// sizeLabel picks the field name shown for the size line. Pasta products
// say "Tipo" because their sizes are really preparation styles.
func sizeLabel(title string) string {
	lowered := strings.ToLower(title)
	if strings.Contains(lowered, "pasta") || strings.Contains(lowered, "lagsana") {
		return "Tipo"
	}
	return "Tamaño"
}

// Links are the two WhatsApp deep-link variants for one message.
type Links struct {
	Mobile  string `json:"mobile"`
	Desktop string `json:"desktop"`
}

// BuildLinks encodes the message into both deep-link forms.
func BuildLinks(number, message string) Links {
	encoded := encodeMessage(message)
	return Links{
		Mobile:  "https://wa.me/" + number + "?text=" + encoded,
		Desktop: "https://web.whatsapp.com/send?phone=" + number + "&text=" + encoded,
	}
}

// PreferredLink picks the deep link matching the caller's user agent.
func PreferredLink(links Links, userAgent string) string {
	if IsMobile(userAgent) {
		return links.Mobile
	}
	return links.Desktop
}

// IsMobile sniffs the user agent the same way WhatsApp's own share
// buttons do.
func IsMobile(userAgent string) bool {
	return mobileAgent.MatchString(userAgent)
}

// encodeMessage percent-encodes the message body. Spaces must come out
// as %20, not +, or WhatsApp renders literal plus signs.
func encodeMessage(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
