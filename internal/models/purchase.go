package models

import "time"

// PurchaseStatus enumerates fulfilment states.
type PurchaseStatus string

const (
	PurchaseCompleted  PurchaseStatus = "completed"
	PurchaseProcessing PurchaseStatus = "processing"
	PurchaseShipped    PurchaseStatus = "shipped"
)

// Purchase records a marketplace redemption. Spent amounts are copied from
// the product's prices at purchase time and deducted from the student's
// balances by the ledger.
type Purchase struct {
	ID          string         `db:"id" json:"id"`
	StudentID   string         `db:"student_id" json:"studentId"`
	ProductID   string         `db:"product_id" json:"productId"`
	GoldSpent   int            `db:"gold_spent" json:"goldSpent"`
	SilverSpent int            `db:"silver_spent" json:"silverSpent"`
	BronzeSpent int            `db:"bronze_spent" json:"bronzeSpent"`
	Status      PurchaseStatus `db:"status" json:"status"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}
