package ledger

import (
	"testing"

	"finance-tracker/internal/accounts"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// LedgerTestSuite provides a test suite for the ledger engine
type LedgerTestSuite struct {
	suite.Suite
	durable *storage.LocalStore
	repo    *accounts.Repository
	session *accounts.Session
	svc     *accounts.Service
	engine  *Engine
}

// SetupTest runs before each test with a registered, logged-in user
func (suite *LedgerTestSuite) SetupTest() {
	durable, err := storage.NewLocalStore(":memory:")
	require.NoError(suite.T(), err, "failed to create durable store")
	suite.durable = durable
	suite.repo = accounts.NewRepository(durable)
	suite.session = accounts.NewSession(storage.NewMemStore())
	suite.svc = accounts.NewService(suite.repo, suite.session)
	suite.engine = NewEngine(suite.repo, suite.session)

	_, err = suite.svc.Register("Ann", "a@x.com", "p1")
	require.NoError(suite.T(), err, "failed to register test user")
}

// TearDownTest runs after each test
func (suite *LedgerTestSuite) TearDownTest() {
	if suite.durable != nil {
		suite.durable.Close()
	}
}

func (suite *LedgerTestSuite) TestAddTransaction() {
	tx, err := suite.engine.AddTransaction("Salary", 1000, models.Income, "2024-01-05")
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), tx.ID)

	list := suite.engine.ListTransactions()
	require.Len(suite.T(), list, 1)
	assert.Equal(suite.T(), "Salary", list[0].Text)
	assert.Equal(suite.T(), 1000.0, list[0].Amount)
	assert.Equal(suite.T(), models.Income, list[0].Type)
	assert.Equal(suite.T(), "2024-01-05", list[0].Date)
}

func (suite *LedgerTestSuite) TestAddTransactionUniqueIDs() {
	seen := make(map[string]bool)
	for range 5 {
		tx, err := suite.engine.AddTransaction("Coffee", 3.5, models.Expense, "2024-01-05")
		require.NoError(suite.T(), err)
		assert.False(suite.T(), seen[tx.ID], "duplicate transaction id %s", tx.ID)
		seen[tx.ID] = true
	}
}

func (suite *LedgerTestSuite) TestAddTransactionInvalidInput() {
	cases := []struct {
		name   string
		text   string
		amount float64
		date   string
	}{
		{"negative amount", "Rent", -5, "2024-01-06"},
		{"zero amount", "Rent", 0, "2024-01-06"},
		{"blank text", "  ", 10, "2024-01-06"},
		{"bad date", "Rent", 10, "yesterday"},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			_, err := suite.engine.AddTransaction(tc.text, tc.amount, models.Expense, tc.date)
			require.ErrorIs(suite.T(), err, accounts.ErrInvalidInput)
			assert.Empty(suite.T(), suite.engine.ListTransactions(), "failed add must not mutate the list")
		})
	}
}

func (suite *LedgerTestSuite) TestAddTransactionTrimsText() {
	tx, err := suite.engine.AddTransaction("  Salary  ", 1000, models.Income, "2024-01-05")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Salary", tx.Text)
}

func (suite *LedgerTestSuite) TestAddRefreshesSession() {
	_, err := suite.engine.AddTransaction("Salary", 1000, models.Income, "2024-01-05")
	require.NoError(suite.T(), err)

	// The session snapshot must match the durable record after the mutation
	current, err := suite.session.Current()
	require.NoError(suite.T(), err)
	stored, err := suite.repo.FindByID(current.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored.Transactions, current.Transactions)
}

func (suite *LedgerTestSuite) TestDeleteTransaction() {
	first, err := suite.engine.AddTransaction("Salary", 1000, models.Income, "2024-01-05")
	require.NoError(suite.T(), err)
	second, err := suite.engine.AddTransaction("Rent", 400, models.Expense, "2024-01-06")
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.engine.DeleteTransaction(first.ID))

	list := suite.engine.ListTransactions()
	require.Len(suite.T(), list, 1)
	assert.Equal(suite.T(), second, list[0], "remaining entry must be unchanged")
}

func (suite *LedgerTestSuite) TestDeleteMissingIDIsNoOp() {
	_, err := suite.engine.AddTransaction("Salary", 1000, models.Income, "2024-01-05")
	require.NoError(suite.T(), err)

	err = suite.engine.DeleteTransaction("no-such-id")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), suite.engine.ListTransactions(), 1)
}

func (suite *LedgerTestSuite) TestRequiresSession() {
	require.NoError(suite.T(), suite.svc.Logout())

	_, err := suite.engine.AddTransaction("Salary", 1000, models.Income, "2024-01-05")
	assert.ErrorIs(suite.T(), err, accounts.ErrNotLoggedIn)

	err = suite.engine.DeleteTransaction("any")
	assert.ErrorIs(suite.T(), err, accounts.ErrNotLoggedIn)

	assert.Empty(suite.T(), suite.engine.ListTransactions())
}

func (suite *LedgerTestSuite) TestEndToEndAggregates() {
	_, err := suite.engine.AddTransaction("Salary", 1000, models.Income, "2024-01-05")
	require.NoError(suite.T(), err)
	_, err = suite.engine.AddTransaction("Rent", 400, models.Expense, "2024-01-06")
	require.NoError(suite.T(), err)

	agg := ComputeAggregates(suite.engine.ListTransactions())
	assert.Equal(suite.T(), 600.0, agg.Balance)
	assert.Equal(suite.T(), 1000.0, agg.TotalIncome)
	assert.Equal(suite.T(), 400.0, agg.TotalExpense)
}

// TestLedgerSuite runs the ledger engine test suite
func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
