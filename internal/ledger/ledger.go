// Package ledger implements CRUD over the active user's transaction list,
// derived aggregates, and the display/report renderings. The engine is
// state-free: every mutation round-trips through the account repository and
// the session snapshot is refreshed from the just-persisted record.
package ledger

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"finance-tracker/internal/accounts"
	"finance-tracker/internal/models"

	"github.com/go-playground/validator/v10"
)

// Engine performs transaction CRUD for whoever the session holds.
type Engine struct {
	repo     *accounts.Repository
	session  *accounts.Session
	validate *validator.Validate
	now      func() time.Time
}

// addInput carries a prospective transaction through validation. Text is
// trimmed before the struct is built.
type addInput struct {
	Text   string                 `validate:"required"`
	Amount float64                `validate:"gt=0,finite"`
	Type   models.TransactionType `validate:"oneof=income expense"`
	Date   string                 `validate:"required,datetime=2006-01-02"`
}

// NewEngine wires an engine over the given repository and session.
func NewEngine(repo *accounts.Repository, session *accounts.Session) *Engine {
	v := validator.New()
	// gt=0 already rejects NaN (the comparison is false); this catches +Inf
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return &Engine{repo: repo, session: session, validate: v, now: time.Now}
}

// AddTransaction validates the input and appends a new entry to the active
// user's list. On validation failure nothing is persisted; on success the
// record is written through and the session snapshot refreshed.
func (e *Engine) AddTransaction(text string, amount float64, typ models.TransactionType, date string) (models.Transaction, error) {
	in := addInput{Text: strings.TrimSpace(text), Amount: amount, Type: typ, Date: date}
	if err := e.validate.Struct(in); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %v", accounts.ErrInvalidInput, err)
	}

	user, err := e.session.Current()
	if err != nil {
		return models.Transaction{}, err
	}

	tx := models.Transaction{
		ID:     e.newID(user.Transactions),
		Text:   in.Text,
		Amount: in.Amount,
		Type:   in.Type,
		Date:   in.Date,
	}
	user.Transactions = append(user.Transactions, tx)

	if err := e.writeThrough(user); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// DeleteTransaction removes the entry with the given id from the active
// user's list. A missing id is a no-op, not an error (filter semantics).
// ErrNotLoggedIn without an active session.
func (e *Engine) DeleteTransaction(id string) error {
	user, err := e.session.Current()
	if err != nil {
		return err
	}

	kept := make([]models.Transaction, 0, len(user.Transactions))
	for _, tx := range user.Transactions {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	user.Transactions = kept

	return e.writeThrough(user)
}

// ListTransactions returns a copy of the active user's transactions for
// rendering, or an empty list when no session is active.
func (e *Engine) ListTransactions() []models.Transaction {
	user, err := e.session.Current()
	if err != nil {
		return nil
	}
	return slices.Clone(user.Transactions)
}

// writeThrough persists the mutated user and refreshes the session snapshot
// from the just-persisted record.
func (e *Engine) writeThrough(user models.User) error {
	if err := e.repo.Persist(user); err != nil {
		return err
	}
	fresh, err := e.repo.FindByID(user.ID)
	if err != nil {
		return err
	}
	return e.session.Set(fresh)
}

// newID derives an id from the creation instant. Uniqueness is only
// required within one user's list, so collisions (same-nanosecond inserts)
// are resolved by bumping.
func (e *Engine) newID(existing []models.Transaction) string {
	n := e.now().UnixNano()
	for {
		id := strconv.FormatInt(n, 10)
		if !slices.ContainsFunc(existing, func(tx models.Transaction) bool { return tx.ID == id }) {
			return id
		}
		n++
	}
}
