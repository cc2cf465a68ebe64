package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a snapshot of one book sale at transaction time.
// Title and Price are captured from the book when the sale is recorded and
// never updated afterwards, so the transaction record stays true to what
// was actually charged.
type LineItem struct {
	BookID   string          `json:"book_id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price × quantity for this line.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Transaction records a sale to a contact.
// Stock-affecting fields are immutable once written; edits go through the
// inventory ledger as an atomic replace, never as in-place mutation.
type Transaction struct {
	Audit
	ContactID       string          `json:"contact_id"`
	ContactName     string          `json:"contact_name"` // denormalized at sale time
	Lines           []LineItem      `json:"lines"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// ComputeTotal sums price × quantity across lines. The result is written to
// TotalPrice exactly once, when the transaction is created.
func ComputeTotal(lines []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
