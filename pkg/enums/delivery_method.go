package enums

// DeliveryMethod is how the customer receives the order.
type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "recoger"
	DeliveryDelivery DeliveryMethod = "delivery"
)

func (d DeliveryMethod) Valid() bool {
	return d == DeliveryPickup || d == DeliveryDelivery
}

// Label is the customer-facing Spanish label used in the order message.
func (d DeliveryMethod) Label() string {
	if d == DeliveryDelivery {
		return "Delivery"
	}
	return "Recoger en local"
}
