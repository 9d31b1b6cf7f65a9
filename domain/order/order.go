// Package order describes customer orders. Orders are owned by the
// signed-in user: listed, updated and deleted only by their owner.
package order

import (
	"horseadmin/domain/resource"
)

// ShippingAddress delivery address.
type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ShippingMethod carrier and tracking.
type ShippingMethod struct {
	Carrier        string `json:"carrier"`
	Method         string `json:"method"`
	TrackingNumber string `json:"tracking_number"`
}

// Order a customer order.
type Order struct {
	_ struct{} `theorydb:"naming:snake_case"`
	resource.Base
	resource.Ownership

	OrderNumber     string          `json:"order_number" gorm:"size:64;index"`
	CustomerName    string          `json:"customer_name" gorm:"size:255"`
	Email           string          `json:"email" gorm:"size:255"`
	Status          string          `json:"status" gorm:"size:32"`
	PaymentStatus   string          `json:"payment_status" gorm:"size:32"`
	PaymentMethod   string          `json:"payment_method" gorm:"size:32"`
	Subtotal        float64         `json:"subtotal"`
	ShippingCost    float64         `json:"shipping_cost"`
	Tax             float64         `json:"tax"`
	TotalAmount     float64         `json:"total_amount"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"serializer:json"`
	ShippingMethod  ShippingMethod  `json:"shipping_method" gorm:"serializer:json"`
}

func (Order) TableName() string { return "orders" }

// Schema orders collection schema.
func Schema() *resource.Schema[*Order] {
	return &resource.Schema[*Order]{
		Entity:      "order",
		Title:       "Orders",
		Collection:  "orders",
		New:         func() *Order { return &Order{} },
		OwnerScoped: true,
		Fields: []resource.Field{
			{Name: "order_number", Label: "Order number", Kind: resource.KindText, Required: true},
			{Name: "customer_name", Label: "Customer", Kind: resource.KindText, Required: true},
			{Name: "email", Label: "Email", Kind: resource.KindEmail},
			{Name: "status", Label: "Status", Kind: resource.KindSelect, Options: []string{"pending", "processing", "shipped", "delivered", "cancelled"}},
			{Name: "payment_status", Label: "Payment status", Kind: resource.KindSelect, Options: []string{"unpaid", "paid", "refunded"}},
			{Name: "payment_method", Label: "Payment method", Kind: resource.KindSelect, Options: []string{"credit_card", "paypal", "bank_transfer"}},
			{Name: "subtotal", Label: "Subtotal", Kind: resource.KindFloat, Required: true},
			{Name: "shipping_cost", Label: "Shipping cost", Kind: resource.KindFloat, Required: true},
			{Name: "tax", Label: "Tax", Kind: resource.KindFloat, Required: true},
			{Name: "total_amount", Label: "Total", Kind: resource.KindFloat, Required: true},
			{Name: "shipping_address.street", Label: "Street", Kind: resource.KindText, Required: true},
			{Name: "shipping_address.city", Label: "City", Kind: resource.KindText, Required: true},
			{Name: "shipping_address.state", Label: "State", Kind: resource.KindText, Required: true},
			{Name: "shipping_address.postal_code", Label: "Postal code", Kind: resource.KindText, Required: true},
			{Name: "shipping_address.country", Label: "Country", Kind: resource.KindText, Required: true},
			{Name: "shipping_method.carrier", Label: "Carrier", Kind: resource.KindText},
			{Name: "shipping_method.method", Label: "Shipping method", Kind: resource.KindText},
			{Name: "shipping_method.tracking_number", Label: "Tracking number", Kind: resource.KindText},
		},
		Columns: []resource.Column[*Order]{
			{Header: "Order", Value: func(o *Order) string { return "#" + o.OrderNumber }},
			{Header: "Customer", Value: func(o *Order) string { return o.CustomerName }},
			{Header: "Total", Value: func(o *Order) string { return resource.Money(o.TotalAmount) }},
			{Header: "Payment", Value: func(o *Order) string { return o.PaymentStatus }},
			{Header: "Date", Value: func(o *Order) string { return o.CreatedAt.Format("2006-01-02") }},
		},
		Search: []resource.Accessor[*Order]{
			resource.Text(func(o *Order) string { return o.CustomerName }),
			resource.Text(func(o *Order) string { return o.OrderNumber }),
		},
		Status: resource.Text(func(o *Order) string { return o.Status }),
		Statuses: resource.StatusTable{
			{Category: "pending", Label: "Pending Orders", Tone: resource.ToneYellow},
			{Category: "processing", Tone: resource.ToneBlue},
			{Category: "shipped", Tone: resource.ToneBlue},
			{Category: "delivered", Tone: resource.ToneGreen},
			{Category: "completed", Tone: resource.ToneGreen},
			{Category: "cancelled", Tone: resource.ToneRed},
		},
		Order: resource.ByCreatedAt[*Order](),
		Summary: func(rows []*Order) []resource.Stat {
			revenue := Revenue(rows)
			avg := 0.0
			if len(rows) > 0 {
				avg = revenue / float64(len(rows))
			}
			return []resource.Stat{
				{Label: "Total Revenue", Value: resource.Money(revenue)},
				{Label: "Average Order Value", Value: resource.Money(avg)},
			}
		},
	}
}

// Revenue sums total_amount.
func Revenue(rows []*Order) float64 {
	var sum float64
	for _, o := range rows {
		sum += o.TotalAmount
	}
	return sum
}
