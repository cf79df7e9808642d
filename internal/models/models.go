package models

// TransactionType says whether an amount adds to or subtracts from the
// balance.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction is a single ledger entry. Amount is always stored
// non-negative; direction comes from Type.
type Transaction struct {
	ID     string          `json:"id"`
	Text   string          `json:"text"`
	Amount float64         `json:"amount"`
	Type   TransactionType `json:"type"`
	Date   string          `json:"date"` // calendar date, 2006-01-02
}

// User is a registered account record. The password is stored as entered;
// hashing is out of scope for this tier of system.
type User struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Password     string        `json:"password"`
	Transactions []Transaction `json:"transactions"`
}
