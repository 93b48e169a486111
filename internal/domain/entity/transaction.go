package entity

import (
	"time"
)

type TransactionStatus string

const (
	StatusDepositPlaced  TransactionStatus = "deposit_placed"
	StatusLocationShared TransactionStatus = "location_shared"
	StatusCompleted      TransactionStatus = "completed"
	StatusCancelled      TransactionStatus = "cancelled"

	// StatusNeedsReconciliation marks a deposit whose chat notice could not be
	// written. The deposit itself is committed; the thread is out of sync.
	StatusNeedsReconciliation TransactionStatus = "needs_reconciliation"
)

func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Transaction is a deposit record linking a gear item, buyer, seller and chat.
// Records are only ever appended and advanced, never deleted.
type Transaction struct {
	ID       string `json:"id"`
	GearID   string `json:"gear_id"`
	BuyerID  string `json:"buyer_id"`
	SellerID string `json:"seller_id"`
	ChatID   string `json:"chat_id"`

	DepositAmount float64           `json:"deposit_amount"`
	Status        TransactionStatus `json:"status"`

	DepositAt   time.Time  `json:"deposit_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
