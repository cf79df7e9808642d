package ledger

import (
	"math"
	"sort"
	"time"

	"finance-tracker/internal/models"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// dateLayout is the stored calendar-date form. ISO dates compare
// lexicographically in date order, which the sort below relies on.
const dateLayout = "2006-01-02"

// displayDateLayout is the human-readable form shown in lists and reports.
const displayDateLayout = "Jan 2, 2006"

// Row is one line of the rendered transaction list.
type Row struct {
	ID     string
	Text   string
	Type   models.TransactionType
	Date   string // human readable
	Amount string // signed, locale formatted
	Income bool
}

// Formatter renders money and dates for display in a fixed locale and
// currency. The defaults match the source locale: Indian English, rupees.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter returns a formatter for the given locale and currency.
func NewFormatter(tag language.Tag, unit currency.Unit) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}
}

// DefaultFormatter returns the en-IN / INR formatter.
func DefaultFormatter() *Formatter {
	return NewFormatter(language.MustParse("en-IN"), currency.INR)
}

// Money formats an amount with the currency symbol and locale digit
// grouping. Negative amounts carry a leading minus.
func (f *Formatter) Money(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + f.printer.Sprintf("%v%v",
		currency.Symbol(f.unit),
		number.Decimal(math.Abs(amount), number.Scale(2)),
	)
}

// SignedMoney formats an amount with the direction sign implied by the
// transaction type.
func (f *Formatter) SignedMoney(amount float64, typ models.TransactionType) string {
	sign := "+"
	if typ == models.Expense {
		sign = "-"
	}
	return sign + f.Money(math.Abs(amount))
}

// Date turns a stored calendar date into its display form. A date that does
// not parse is shown as stored.
func (f *Formatter) Date(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(displayDateLayout)
}

// SortByDateDesc returns a copy of transactions ordered newest first. The
// sort is stable, so same-day entries keep their insertion order.
func SortByDateDesc(transactions []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

// RenderList produces display rows, newest first.
func (f *Formatter) RenderList(transactions []models.Transaction) []Row {
	sorted := SortByDateDesc(transactions)
	rows := make([]Row, 0, len(sorted))
	for _, tx := range sorted {
		rows = append(rows, Row{
			ID:     tx.ID,
			Text:   tx.Text,
			Type:   tx.Type,
			Date:   f.Date(tx.Date),
			Amount: f.SignedMoney(tx.Amount, tx.Type),
			Income: tx.Type == models.Income,
		})
	}
	return rows
}
