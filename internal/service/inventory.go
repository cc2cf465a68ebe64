package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
	"github.com/shopmateapp/shopmate-server/internal/id"
	"github.com/shopmateapp/shopmate-server/internal/store"
	"github.com/shopmateapp/shopmate-server/internal/validation"
)

// InventoryService manages books and the sales ledger.
type InventoryService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

func NewInventoryService(st *store.Store, logger *slog.Logger) *InventoryService {
	return &InventoryService{store: st, validator: validation.New(), logger: logger}
}

// BookRequest is the form payload for creating or updating a book.
// Price arrives as a string to keep two-decimal money out of floats.
type BookRequest struct {
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Year      int    `json:"year,omitempty"`
	Price     string `json:"price,omitempty"`
	Stock     int    `json:"stock,omitempty" validate:"min=0"`
}

func (r BookRequest) price() (decimal.Decimal, error) {
	if r.Price == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return decimal.Zero, domainerrors.Validationf("%q is not a valid price", r.Price)
	}
	if err := domain.ValidatePrice(price); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

// LineRequest names a book and quantity for a sale.
type LineRequest struct {
	BookID   string `json:"book_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// TransactionRequest is the payload for recording or editing a sale.
type TransactionRequest struct {
	ContactID string        `json:"contact_id" validate:"required"`
	Lines     []LineRequest `json:"lines" validate:"required,min=1,dive"`
	Date      time.Time     `json:"date,omitzero"`
}

func (r TransactionRequest) storeLines() []store.LineRequest {
	lines := make([]store.LineRequest, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = store.LineRequest{BookID: l.BookID, Quantity: l.Quantity}
	}
	return lines
}

func (s *InventoryService) CreateBook(ctx context.Context, req BookRequest, actor string) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	price, err := req.price()
	if err != nil {
		return nil, err
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	book := &domain.Book{
		Title:     req.Title,
		Author:    req.Author,
		ISBN:      req.ISBN,
		Publisher: req.Publisher,
		Genre:     req.Genre,
		Year:      req.Year,
		Price:     price,
		Stock:     req.Stock,
	}
	book.ID = bookID
	book.Stamp(actor)

	if err := s.store.Books.Create(ctx, bookID, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book created", "book_id", bookID, "title", book.Title)
	return book, nil
}

func (s *InventoryService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.Books.Get(ctx, bookID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("book %s not found", bookID)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

func (s *InventoryService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.store.Books.All(ctx)
}

// UpdateBook edits book fields. Stock is deliberately absent here; stock
// changes go through AdjustStock or the ledger so the count can't drift
// from the transaction history.
func (s *InventoryService) UpdateBook(ctx context.Context, bookID string, req BookRequest, actor string) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	price, err := req.price()
	if err != nil {
		return nil, err
	}

	var updated *domain.Book
	err = s.store.Books.Mutate(ctx, bookID, func(b *domain.Book) error {
		b.Title = req.Title
		b.Author = req.Author
		b.ISBN = req.ISBN
		b.Publisher = req.Publisher
		b.Genre = req.Genre
		b.Year = req.Year
		if req.Price != "" {
			b.Price = price
		}
		b.Touch(actor)
		updated = b
		return nil
	})
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("book %s not found", bookID)
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return updated, nil
}

func (s *InventoryService) DeleteBook(ctx context.Context, bookID string) error {
	if _, err := s.GetBook(ctx, bookID); err != nil {
		return err
	}
	if err := s.store.Books.Delete(ctx, bookID); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}

// AdjustStock applies a relative stock delta (restock or correction).
func (s *InventoryService) AdjustStock(ctx context.Context, bookID string, delta int, actor string) (*domain.Book, error) {
	return s.store.AdjustStock(ctx, actor, bookID, delta)
}

func (s *InventoryService) CreateTransaction(ctx context.Context, req TransactionRequest, actor string) (*domain.Transaction, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.store.CreateTransaction(ctx, actor, req.ContactID, req.storeLines(), req.Date)
}

func (s *InventoryService) GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error) {
	txn, err := s.store.Transactions.Get(ctx, txnID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("transaction %s not found", txnID)
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return txn, nil
}

func (s *InventoryService) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return s.store.Transactions.All(ctx)
}

func (s *InventoryService) DeleteTransaction(ctx context.Context, txnID, actor string) error {
	return s.store.DeleteTransaction(ctx, actor, txnID)
}

// ReplaceTransaction edits a sale atomically: the old lines are refunded
// and the new ones deducted in one store transaction.
func (s *InventoryService) ReplaceTransaction(ctx context.Context, txnID string, req TransactionRequest, actor string) (*domain.Transaction, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.store.ReplaceTransaction(ctx, actor, txnID, req.ContactID, req.storeLines(), req.Date)
}
