package store

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
	"github.com/shopmateapp/shopmate-server/internal/id"
)

// LineRequest names a book and a quantity for a sale.
type LineRequest struct {
	BookID   string
	Quantity int
}

// ledgerTxn tracks the books touched while applying stock deltas inside a
// single Badger transaction. Each book is read at most once; repeated lines
// against the same book accumulate on the in-memory copy before it is
// written back.
type ledgerTxn struct {
	txn   *badger.Txn
	books map[string]*domain.Book
}

func newLedgerTxn(txn *badger.Txn) *ledgerTxn {
	return &ledgerTxn{txn: txn, books: make(map[string]*domain.Book)}
}

// book loads a book by ID, serving repeated requests from the local map.
func (lt *ledgerTxn) book(bookID string) (*domain.Book, error) {
	if b, ok := lt.books[bookID]; ok {
		return b, nil
	}

	var b domain.Book
	err := getDoc(lt.txn, bookPrefix+bookID, &b)
	if err == ErrNotFound {
		return nil, domainerrors.NotFoundf("book %s not found", bookID)
	}
	if err != nil {
		return nil, err
	}

	lt.books[bookID] = &b
	return &b, nil
}

// deduct applies the requested lines against current stock and returns the
// line snapshots. Any shortfall fails the whole transaction with a
// validation error naming the book and the gap.
func (lt *ledgerTxn) deduct(lines []LineRequest) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(lines))
	for _, req := range lines {
		if req.Quantity <= 0 {
			return nil, domainerrors.Validationf("quantity for book %s must be at least 1", req.BookID)
		}

		book, err := lt.book(req.BookID)
		if err != nil {
			return nil, err
		}

		if book.Stock < req.Quantity {
			return nil, domainerrors.Validationf(
				"only %d of %q in stock, can't sell %d", book.Stock, book.Title, req.Quantity)
		}
		book.Stock -= req.Quantity

		items = append(items, domain.LineItem{
			BookID:   book.ID,
			Title:    book.Title,
			Price:    book.Price,
			Quantity: req.Quantity,
		})
	}
	return items, nil
}

// refund returns the quantities recorded in a transaction's snapshot to
// stock. The snapshot's own quantities drive the refund; current book state
// is only read to apply the delta. Books deleted since the sale have
// nothing left to refund and are skipped.
func (lt *ledgerTxn) refund(lines []domain.LineItem) error {
	for _, line := range lines {
		book, err := lt.book(line.BookID)
		if errors.Is(err, domainerrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		book.Stock += line.Quantity
	}
	return nil
}

// flush writes every touched book back to the store.
func (lt *ledgerTxn) flush(actor string) error {
	for _, book := range lt.books {
		book.Touch(actor)
		if err := setDoc(lt.txn, bookPrefix+book.ID, book); err != nil {
			return err
		}
	}
	return nil
}

// CreateTransaction records a sale: it writes a new transaction document
// with a price/title snapshot per line and decrements stock on every
// referenced book, all in one atomic Badger transaction. A concurrent
// reader never observes the transaction without its stock effect or vice
// versa. Insufficient stock fails the whole operation and leaves stock
// untouched.
func (s *Store) CreateTransaction(ctx context.Context, actor, contactID string, lines []LineRequest, date time.Time) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domainerrors.Validation("a sale needs at least one line item")
	}

	txnID, err := id.Generate("txn")
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now()
	}

	var created *domain.Transaction
	err = s.updateWithRetry(func(txn *badger.Txn) error {
		var contact domain.Contact
		if err := getDoc(txn, contactPrefix+contactID, &contact); err != nil {
			if err == ErrNotFound {
				return domainerrors.NotFoundf("contact %s not found", contactID)
			}
			return err
		}

		lt := newLedgerTxn(txn)
		items, err := lt.deduct(lines)
		if err != nil {
			return err
		}

		t := &domain.Transaction{
			ContactID:       contactID,
			ContactName:     contact.DisplayName(),
			Lines:           items,
			TotalPrice:      domain.ComputeTotal(items),
			TransactionDate: date,
		}
		t.ID = txnID
		t.Stamp(actor)

		if err := setDoc(txn, txnPrefix+txnID, t); err != nil {
			return err
		}
		if err := lt.flush(actor); err != nil {
			return err
		}

		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("transaction created",
			"transaction_id", created.ID,
			"contact_id", contactID,
			"total", created.TotalPrice.StringFixed(2),
		)
	}

	return created, nil
}

// DeleteTransaction removes a transaction and returns its recorded
// quantities to stock in one atomic operation. The refund uses the
// transaction's own snapshot, never current book prices or titles.
func (s *Store) DeleteTransaction(ctx context.Context, actor, txnID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.updateWithRetry(func(txn *badger.Txn) error {
		var t domain.Transaction
		if err := getDoc(txn, txnPrefix+txnID, &t); err != nil {
			if err == ErrNotFound {
				return domainerrors.NotFoundf("transaction %s not found", txnID)
			}
			return err
		}

		lt := newLedgerTxn(txn)
		if err := lt.refund(t.Lines); err != nil {
			return err
		}
		if err := txn.Delete([]byte(txnPrefix + txnID)); err != nil {
			return err
		}
		return lt.flush(actor)
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("transaction deleted", "transaction_id", txnID)
	}
	return nil
}

// ReplaceTransaction edits a sale as delete-then-recreate, but inside a
// single atomic transaction: the old snapshot's quantities are refunded and
// the new lines deducted in one commit, so a failure partway can never
// leave stock half-adjusted. Returns the replacement transaction.
func (s *Store) ReplaceTransaction(ctx context.Context, actor, txnID, contactID string, lines []LineRequest, date time.Time) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domainerrors.Validation("a sale needs at least one line item")
	}

	newID, err := id.Generate("txn")
	if err != nil {
		return nil, err
	}

	var created *domain.Transaction
	err = s.updateWithRetry(func(txn *badger.Txn) error {
		var old domain.Transaction
		if err := getDoc(txn, txnPrefix+txnID, &old); err != nil {
			if err == ErrNotFound {
				return domainerrors.NotFoundf("transaction %s not found", txnID)
			}
			return err
		}

		if contactID == "" {
			contactID = old.ContactID
		}
		var contact domain.Contact
		if err := getDoc(txn, contactPrefix+contactID, &contact); err != nil {
			if err == ErrNotFound {
				return domainerrors.NotFoundf("contact %s not found", contactID)
			}
			return err
		}

		lt := newLedgerTxn(txn)
		// Refund first so the new lines validate against the stock the shop
		// would have without the old sale.
		if err := lt.refund(old.Lines); err != nil {
			return err
		}
		items, err := lt.deduct(lines)
		if err != nil {
			return err
		}

		when := date
		if when.IsZero() {
			when = old.TransactionDate
		}

		t := &domain.Transaction{
			ContactID:       contactID,
			ContactName:     contact.DisplayName(),
			Lines:           items,
			TotalPrice:      domain.ComputeTotal(items),
			TransactionDate: when,
		}
		t.ID = newID
		t.Stamp(actor)

		if err := txn.Delete([]byte(txnPrefix + txnID)); err != nil {
			return err
		}
		if err := setDoc(txn, txnPrefix+newID, t); err != nil {
			return err
		}
		if err := lt.flush(actor); err != nil {
			return err
		}

		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("transaction replaced",
			"old_transaction_id", txnID,
			"transaction_id", created.ID,
		)
	}
	return created, nil
}

// AdjustStock applies a relative stock delta to a book (restock or manual
// correction). The result must stay non-negative.
func (s *Store) AdjustStock(ctx context.Context, actor, bookID string, delta int) (*domain.Book, error) {
	var adjusted *domain.Book
	err := s.Books.Mutate(ctx, bookID, func(b *domain.Book) error {
		if b.Stock+delta < 0 {
			return domainerrors.Validationf(
				"can't remove %d of %q, only %d in stock", -delta, b.Title, b.Stock)
		}
		b.Stock += delta
		b.Touch(actor)
		adjusted = b
		return nil
	})
	if err == ErrNotFound {
		return nil, domainerrors.NotFoundf("book %s not found", bookID)
	}
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

// TransactionsForContact returns every transaction referencing the contact.
func (s *Store) TransactionsForContact(ctx context.Context, contactID string) ([]*domain.Transaction, error) {
	all, err := s.Transactions.All(ctx)
	if err != nil {
		return nil, err
	}

	var out []*domain.Transaction
	for _, t := range all {
		if t.ContactID == contactID {
			out = append(out, t)
		}
	}
	return out, nil
}
