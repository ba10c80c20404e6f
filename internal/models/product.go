package models

import "time"

// Product is a marketplace item priced in medals. A free product has all
// three prices at zero.
type Product struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Image       *string   `db:"image" json:"image,omitempty"`
	GoldPrice   int       `db:"gold_price" json:"goldPrice"`
	SilverPrice int       `db:"silver_price" json:"silverPrice"`
	BronzePrice int       `db:"bronze_price" json:"bronzePrice"`
	InStock     bool      `db:"in_stock" json:"inStock"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
