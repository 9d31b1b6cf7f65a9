// Package seller describes marketplace sellers.
package seller

import (
	"strconv"

	"horseadmin/domain/resource"
)

// Seller a business selling on the marketplace.
type Seller struct {
	_ struct{} `theorydb:"naming:snake_case"`
	resource.Base

	BusinessName  string  `json:"business_name" gorm:"size:255;not null"`
	ContactPerson string  `json:"contact_person" gorm:"size:255"`
	Email         string  `json:"email" gorm:"size:255"`
	Phone         string  `json:"phone" gorm:"size:64"`
	Status        string  `json:"status" gorm:"size:32"`
	ProductsCount int     `json:"products_count"`
	TotalSales    float64 `json:"total_sales"`
}

func (Seller) TableName() string { return "sellers" }

// Schema sellers collection schema.
func Schema() *resource.Schema[*Seller] {
	return &resource.Schema[*Seller]{
		Entity:     "seller",
		Title:      "Sellers",
		Collection: "sellers",
		New:        func() *Seller { return &Seller{} },
		Fields: []resource.Field{
			{Name: "business_name", Label: "Business name", Kind: resource.KindText, Required: true},
			{Name: "contact_person", Label: "Contact person", Kind: resource.KindText, Required: true},
			{Name: "email", Label: "Email", Kind: resource.KindEmail, Required: true},
			{Name: "phone", Label: "Phone", Kind: resource.KindText},
			{Name: "status", Label: "Status", Kind: resource.KindSelect, Options: []string{"active", "pending", "inactive"}},
			{Name: "products_count", Label: "Products", Kind: resource.KindInt},
			{Name: "total_sales", Label: "Total sales", Kind: resource.KindFloat},
		},
		Columns: []resource.Column[*Seller]{
			{Header: "Business", Value: func(s *Seller) string { return s.BusinessName }},
			{Header: "Contact", Value: func(s *Seller) string { return s.ContactPerson }},
			{Header: "Email", Value: func(s *Seller) string { return s.Email }},
			{Header: "Products", Value: func(s *Seller) string { return strconv.Itoa(s.ProductsCount) }},
			{Header: "Sales", Value: func(s *Seller) string { return resource.Money(s.TotalSales) }},
		},
		Search: []resource.Accessor[*Seller]{
			resource.Text(func(s *Seller) string { return s.BusinessName }),
			resource.Text(func(s *Seller) string { return s.ContactPerson }),
		},
		Status: resource.Text(func(s *Seller) string { return s.Status }),
		Statuses: resource.StatusTable{
			{Category: "active", Label: "Active Sellers", Tone: resource.ToneGreen},
			{Category: "pending", Label: "Pending Approval", Tone: resource.ToneYellow},
			{Category: "inactive", Tone: resource.ToneRed},
		},
		Order: resource.ByCreatedAt[*Seller](),
		Summary: func(rows []*Seller) []resource.Stat {
			var sales float64
			for _, s := range rows {
				sales += s.TotalSales
			}
			return []resource.Stat{{Label: "Total Sales", Value: resource.Money(sales)}}
		},
	}
}
