package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
	"github.com/shopmateapp/shopmate-server/internal/store"
)

func seedServiceContact(t *testing.T, st *store.Store, id string) {
	t.Helper()

	c := &domain.Contact{FirstName: "Jane", LastName: "Doe", Categories: domain.CategorySet{domain.CategoryOther}}
	c.ID = id
	c.Stamp("test")
	require.NoError(t, st.Contacts.Create(context.Background(), id, c))
}

func TestInventoryService_CreateBook_Defaults(t *testing.T) {
	st := testStore(t)
	svc := NewInventoryService(st, testLogger())

	book, err := svc.CreateBook(context.Background(), BookRequest{Title: "Dune"}, "tester")
	require.NoError(t, err)
	assert.True(t, book.Price.IsZero())
	assert.Equal(t, 0, book.Stock)
}

func TestInventoryService_CreateBook_RejectsBadPrice(t *testing.T) {
	st := testStore(t)
	svc := NewInventoryService(st, testLogger())
	ctx := context.Background()

	_, err := svc.CreateBook(ctx, BookRequest{Title: "Dune", Price: "cheap"}, "tester")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.CreateBook(ctx, BookRequest{Title: "Dune", Price: "-1.00"}, "tester")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.CreateBook(ctx, BookRequest{Title: "Dune", Price: "9.999"}, "tester")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestInventoryService_UpdateBook_PreservesStock(t *testing.T) {
	st := testStore(t)
	svc := NewInventoryService(st, testLogger())
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, BookRequest{Title: "Dune", Price: "9.99", Stock: 5}, "tester")
	require.NoError(t, err)

	updated, err := svc.UpdateBook(ctx, book.ID, BookRequest{Title: "Dune (1965)", Price: "12.99"}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "Dune (1965)", updated.Title)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("12.99")))
	assert.Equal(t, 5, updated.Stock)
}

func TestInventoryService_TransactionRoundTrip(t *testing.T) {
	st := testStore(t)
	svc := NewInventoryService(st, testLogger())
	ctx := context.Background()

	seedServiceContact(t, st, "contact-1")
	book, err := svc.CreateBook(ctx, BookRequest{Title: "Dune", Price: "9.99", Stock: 5}, "tester")
	require.NoError(t, err)

	txn, err := svc.CreateTransaction(ctx, TransactionRequest{
		ContactID: "contact-1",
		Lines:     []LineRequest{{BookID: book.ID, Quantity: 2}},
	}, "tester")
	require.NoError(t, err)
	assert.True(t, txn.TotalPrice.Equal(decimal.RequireFromString("19.98")))

	require.NoError(t, svc.DeleteTransaction(ctx, txn.ID, "tester"))

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}

func TestInventoryService_CreateTransaction_Validation(t *testing.T) {
	st := testStore(t)
	svc := NewInventoryService(st, testLogger())

	_, err := svc.CreateTransaction(context.Background(), TransactionRequest{ContactID: "contact-1"}, "tester")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
