package enums

// OrderStatus is the state reported to the bakery API on submission.
type OrderStatus string

const (
	// OrderStatusPending marks every freshly submitted order.
	OrderStatusPending OrderStatus = "Pending"
)

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}
