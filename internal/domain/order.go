package domain

// OrderStatus tracks an order through the delivery workflow. Only delivered
// orders count toward rating eligibility.
type OrderStatus string

const (
	OrderInProcess OrderStatus = "in_process"
	OrderPackaging OrderStatus = "packaging"
	OrderDelivery  OrderStatus = "delivery"
	OrderDelivered OrderStatus = "delivered"
)
