package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
)

func TestCreateTransaction(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedBook(t, s, "book-1", "Dune", "9.99", 5)
	seedBook(t, s, "book-2", "Hyperion", "12.50", 2)

	txn, err := s.CreateTransaction(ctx, "tester", "contact-1", []LineRequest{
		{BookID: "book-1", Quantity: 2},
		{BookID: "book-2", Quantity: 1},
	}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", txn.ContactName)
	assert.True(t, txn.TotalPrice.Equal(decimal.RequireFromString("32.48")),
		"got total %s", txn.TotalPrice)
	require.Len(t, txn.Lines, 2)
	assert.Equal(t, "Dune", txn.Lines[0].Title)
	assert.False(t, txn.TransactionDate.IsZero())

	dune, err := s.Books.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 3, dune.Stock)

	hyperion, err := s.Books.Get(ctx, "book-2")
	require.NoError(t, err)
	assert.Equal(t, 1, hyperion.Stock)
}

func TestCreateTransaction_EmptyLines(t *testing.T) {
	s := setupTestStore(t)
	seedContact(t, s, "contact-1", "Jane", "Doe")

	_, err := s.CreateTransaction(context.Background(), "tester", "contact-1", nil, time.Time{})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCreateTransaction_InsufficientStock(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedBook(t, s, "book-1", "Dune", "9.99", 5)
	seedBook(t, s, "book-2", "Hyperion", "12.50", 1)

	_, err := s.CreateTransaction(ctx, "tester", "contact-1", []LineRequest{
		{BookID: "book-1", Quantity: 2},
		{BookID: "book-2", Quantity: 3},
	}, time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Contains(t, err.Error(), "Hyperion")

	// The failed line rolls back the whole sale, earlier lines included.
	dune, err := s.Books.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 5, dune.Stock)

	count, err := s.Transactions.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCreateTransaction_UnknownContact(t *testing.T) {
	s := setupTestStore(t)
	seedBook(t, s, "book-1", "Dune", "9.99", 5)

	_, err := s.CreateTransaction(context.Background(), "tester", "contact-missing",
		[]LineRequest{{BookID: "book-1", Quantity: 1}}, time.Time{})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCreateTransaction_RepeatedBookLines(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedBook(t, s, "book-1", "Dune", "9.99", 3)

	_, err := s.CreateTransaction(ctx, "tester", "contact-1", []LineRequest{
		{BookID: "book-1", Quantity: 2},
		{BookID: "book-1", Quantity: 2},
	}, time.Time{})
	require.Error(t, err, "combined quantity exceeds stock")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	book, err := s.Books.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 3, book.Stock)
}

func TestTransaction_SnapshotSurvivesPriceChange(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedBook(t, s, "book-1", "Dune", "9.99", 5)

	txn, err := s.CreateTransaction(ctx, "tester", "contact-1",
		[]LineRequest{{BookID: "book-1", Quantity: 1}}, time.Time{})
	require.NoError(t, err)

	err = s.Books.Mutate(ctx, "book-1", func(b *domain.Book) error {
		b.Price = decimal.RequireFromString("19.99")
		return nil
	})
	require.NoError(t, err)

	got, err := s.Transactions.Get(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("9.99")))
	assert.True(t, got.Lines[0].Price.Equal(decimal.RequireFromString("9.99")))
}

func TestDeleteTransaction_RestoresStock(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedBook(t, s, "book-1", "Dune", "9.99", 5)

	txn, err := s.CreateTransaction(ctx, "tester", "contact-1",
		[]LineRequest{{BookID: "book-1", Quantity: 3}}, time.Time{})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTransaction(ctx, "tester", txn.ID))

	book, err := s.Books.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 5, book.Stock)

	_, err = s.Transactions.Get(ctx, txn.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.DeleteTransaction(context.Background(), "tester", "txn-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDeleteTransaction_SkipsDeletedBooks(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedBook(t, s, "book-1", "Dune", "9.99", 5)

	txn, err := s.CreateTransaction(ctx, "tester", "contact-1",
		[]LineRequest{{BookID: "book-1", Quantity: 2}}, time.Time{})
	require.NoError(t, err)

	require.NoError(t, s.Books.Delete(ctx, "book-1"))
	require.NoError(t, s.DeleteTransaction(ctx, "tester", txn.ID))
}

func TestReplaceTransaction(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedBook(t, s, "book-1", "Dune", "9.99", 5)
	seedBook(t, s, "book-2", "Hyperion", "12.50", 4)

	orig, err := s.CreateTransaction(ctx, "tester", "contact-1",
		[]LineRequest{{BookID: "book-1", Quantity: 2}}, time.Time{})
	require.NoError(t, err)

	replaced, err := s.ReplaceTransaction(ctx, "tester", orig.ID, "",
		[]LineRequest{{BookID: "book-2", Quantity: 1}}, time.Time{})
	require.NoError(t, err)
	assert.NotEqual(t, orig.ID, replaced.ID)
	assert.Equal(t, "contact-1", replaced.ContactID)
	assert.True(t, replaced.TotalPrice.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, orig.TransactionDate.Unix(), replaced.TransactionDate.Unix())

	// Old lines refunded, new lines deducted.
	dune, err := s.Books.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 5, dune.Stock)

	hyperion, err := s.Books.Get(ctx, "book-2")
	require.NoError(t, err)
	assert.Equal(t, 3, hyperion.Stock)

	_, err = s.Transactions.Get(ctx, orig.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceTransaction_ValidatesAgainstRefundedStock(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedBook(t, s, "book-1", "Dune", "9.99", 5)

	orig, err := s.CreateTransaction(ctx, "tester", "contact-1",
		[]LineRequest{{BookID: "book-1", Quantity: 4}}, time.Time{})
	require.NoError(t, err)

	// Only 1 in stock now, but the edit can still take all 5 because the
	// old sale's 4 are refunded first.
	replaced, err := s.ReplaceTransaction(ctx, "tester", orig.ID, "",
		[]LineRequest{{BookID: "book-1", Quantity: 5}}, time.Time{})
	require.NoError(t, err)
	assert.True(t, replaced.TotalPrice.Equal(decimal.RequireFromString("49.95")))

	book, err := s.Books.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 0, book.Stock)
}

func TestReplaceTransaction_FailureLeavesOriginalIntact(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedBook(t, s, "book-1", "Dune", "9.99", 5)

	orig, err := s.CreateTransaction(ctx, "tester", "contact-1",
		[]LineRequest{{BookID: "book-1", Quantity: 2}}, time.Time{})
	require.NoError(t, err)

	_, err = s.ReplaceTransaction(ctx, "tester", orig.ID, "",
		[]LineRequest{{BookID: "book-1", Quantity: 10}}, time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// The failed replace commits nothing: original sale and stock stand.
	got, err := s.Transactions.Get(ctx, orig.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(orig.TotalPrice))

	book, err := s.Books.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 3, book.Stock)
}

func TestCreateTransaction_ConcurrentSalesNeverOversell(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedBook(t, s, "book-1", "Dune", "9.99", 10)

	// 20 concurrent single-copy sales against 10 copies. The conflict
	// retry serializes them; exactly 10 succeed and stock lands on zero.
	var wg sync.WaitGroup
	var sold atomic.Int32
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateTransaction(ctx, "tester", "contact-1", []LineRequest{
				{BookID: "book-1", Quantity: 1},
			}, time.Time{})
			if err == nil {
				sold.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), sold.Load())

	book, err := s.Books.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 0, book.Stock)

	count, err := s.Transactions.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestAdjustStock(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedBook(t, s, "book-1", "Dune", "9.99", 2)

	book, err := s.AdjustStock(ctx, "tester", "book-1", 10)
	require.NoError(t, err)
	assert.Equal(t, 12, book.Stock)

	_, err = s.AdjustStock(ctx, "tester", "book-1", -20)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	book, err = s.Books.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 12, book.Stock)
}

func TestTransactionsForContact(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedContact(t, s, "contact-2", "John", "Smith")
	seedBook(t, s, "book-1", "Dune", "9.99", 10)

	_, err := s.CreateTransaction(ctx, "tester", "contact-1",
		[]LineRequest{{BookID: "book-1", Quantity: 1}}, time.Time{})
	require.NoError(t, err)
	_, err = s.CreateTransaction(ctx, "tester", "contact-2",
		[]LineRequest{{BookID: "book-1", Quantity: 1}}, time.Time{})
	require.NoError(t, err)

	txns, err := s.TransactionsForContact(ctx, "contact-1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Jane Doe", txns[0].ContactName)
}
