// Package product describes the marketplace catalogue.
package product

import (
	"strconv"

	"horseadmin/domain/resource"
)

// Product a marketplace listing.
type Product struct {
	_ struct{} `theorydb:"naming:snake_case"`
	resource.Base

	Name     string  `json:"name" gorm:"size:255;not null"`
	Category string  `json:"category" gorm:"size:64"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Status   string  `json:"status" gorm:"size:32"`
	Seller   string  `json:"seller" gorm:"size:255"`
}

func (Product) TableName() string { return "products" }

// Schema products collection schema.
func Schema() *resource.Schema[*Product] {
	return &resource.Schema[*Product]{
		Entity:     "product",
		Title:      "Products",
		Collection: "products",
		New:        func() *Product { return &Product{} },
		Fields: []resource.Field{
			{Name: "name", Label: "Name", Kind: resource.KindText, Required: true},
			{Name: "category", Label: "Category", Kind: resource.KindSelect, Options: []string{"Equipment", "Food", "Safety", "Accessories"}},
			{Name: "price", Label: "Price", Kind: resource.KindFloat, Required: true},
			{Name: "stock", Label: "Stock", Kind: resource.KindInt, Required: true},
			{Name: "status", Label: "Status", Kind: resource.KindSelect, Options: []string{"in_stock", "low_stock", "out_of_stock"}},
			{Name: "seller", Label: "Seller", Kind: resource.KindText},
		},
		Columns: []resource.Column[*Product]{
			{Header: "Name", Value: func(p *Product) string { return p.Name }},
			{Header: "Category", Value: func(p *Product) string { return p.Category }},
			{Header: "Price", Value: func(p *Product) string { return resource.Money(p.Price) }},
			{Header: "Stock", Value: func(p *Product) string { return strconv.Itoa(p.Stock) }},
			{Header: "Seller", Value: func(p *Product) string { return p.Seller }},
		},
		Search: []resource.Accessor[*Product]{
			resource.Text(func(p *Product) string { return p.Name }),
			resource.Text(func(p *Product) string { return p.Category }),
		},
		Status: resource.Text(func(p *Product) string { return p.Status }),
		Statuses: resource.StatusTable{
			{Category: "in_stock", Label: "In Stock", Tone: resource.ToneGreen},
			{Category: "low_stock", Label: "Low Stock", Tone: resource.ToneYellow},
			{Category: "out_of_stock", Label: "Out of Stock", Tone: resource.ToneRed},
		},
		Order: resource.ByCreatedAt[*Product](),
		Summary: func(rows []*Product) []resource.Stat {
			var value float64
			for _, p := range rows {
				value += p.Price * float64(p.Stock)
			}
			return []resource.Stat{{Label: "Inventory Value", Value: resource.Money(value)}}
		},
	}
}
