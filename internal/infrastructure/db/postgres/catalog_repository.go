package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/librarium/library-api/internal/core/domain"
)

const (
	bookColumns     = `id, title, description, author, isbn, price, status, author_id, created_at, updated_at`
	authorColumns   = `id, first_name, last_name, email, phone_number, created_at, updated_at`
	borrowerColumns = `id, first_name, last_name, email, phone_number, issue_date, due_date, created_at, updated_at`
)

// queryOne runs a single-row query and maps sql.ErrNoRows and unparsable ids
// to domain.ErrNotFound.
func queryOne[T any](ctx context.Context, db DBTX, scan func(rowScanner) (*T, error), query string, args ...any) (*T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func queryAll[T any](ctx context.Context, db DBTX, scan func(rowScanner) (*T, error), query string) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func exec(ctx context.Context, db DBTX, query string, args ...any) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func execOne(ctx context.Context, db DBTX, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrConflict
		case isInvalidText(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res, domain.ErrNotFound)
}

type BookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, b *domain.Book) error {
	return exec(ctx, r.db,
		`INSERT INTO books (`+bookColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.Title, b.Description, b.Author, b.ISBN, b.Price, b.Status, b.AuthorID, b.CreatedAt, b.UpdatedAt)
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	return queryOne(ctx, r.db, scanBook, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
}

func (r *BookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	return queryAll(ctx, r.db, scanBook, `SELECT `+bookColumns+` FROM books ORDER BY created_at`)
}

func (r *BookRepository) Update(ctx context.Context, b *domain.Book) error {
	return execOne(ctx, r.db,
		`UPDATE books
		 SET title = $2, description = $3, author = $4, isbn = $5, price = $6, status = $7, author_id = $8, updated_at = $9
		 WHERE id = $1`,
		b.ID, b.Title, b.Description, b.Author, b.ISBN, b.Price, b.Status, b.AuthorID, b.UpdatedAt)
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM books WHERE id = $1`, id)
}

func scanBook(s rowScanner) (*domain.Book, error) {
	b := &domain.Book{}
	err := s.Scan(&b.ID, &b.Title, &b.Description, &b.Author, &b.ISBN, &b.Price, &b.Status, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

type AuthorRepository struct {
	db DBTX
}

func NewAuthorRepository(db DBTX) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) Create(ctx context.Context, a *domain.Author) error {
	return exec(ctx, r.db,
		`INSERT INTO authors (`+authorColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.FirstName, a.LastName, a.Email, a.PhoneNumber, a.CreatedAt, a.UpdatedAt)
}

func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*domain.Author, error) {
	return queryOne(ctx, r.db, scanAuthor, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id)
}

func (r *AuthorRepository) List(ctx context.Context) ([]*domain.Author, error) {
	return queryAll(ctx, r.db, scanAuthor, `SELECT `+authorColumns+` FROM authors ORDER BY created_at`)
}

func (r *AuthorRepository) Update(ctx context.Context, a *domain.Author) error {
	return execOne(ctx, r.db,
		`UPDATE authors
		 SET first_name = $2, last_name = $3, email = $4, phone_number = $5, updated_at = $6
		 WHERE id = $1`,
		a.ID, a.FirstName, a.LastName, a.Email, a.PhoneNumber, a.UpdatedAt)
}

func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM authors WHERE id = $1`, id)
}

func scanAuthor(s rowScanner) (*domain.Author, error) {
	a := &domain.Author{}
	if err := s.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PhoneNumber, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

type BorrowerRepository struct {
	db DBTX
}

func NewBorrowerRepository(db DBTX) *BorrowerRepository {
	return &BorrowerRepository{db: db}
}

func (r *BorrowerRepository) Create(ctx context.Context, b *domain.Borrower) error {
	return exec(ctx, r.db,
		`INSERT INTO borrowers (`+borrowerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.FirstName, b.LastName, b.Email, b.PhoneNumber, b.IssueDate, b.DueDate, b.CreatedAt, b.UpdatedAt)
}

func (r *BorrowerRepository) FindByID(ctx context.Context, id string) (*domain.Borrower, error) {
	return queryOne(ctx, r.db, scanBorrower, `SELECT `+borrowerColumns+` FROM borrowers WHERE id = $1`, id)
}

func (r *BorrowerRepository) List(ctx context.Context) ([]*domain.Borrower, error) {
	return queryAll(ctx, r.db, scanBorrower, `SELECT `+borrowerColumns+` FROM borrowers ORDER BY created_at`)
}

func (r *BorrowerRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM borrowers WHERE id = $1`, id)
}

func scanBorrower(s rowScanner) (*domain.Borrower, error) {
	b := &domain.Borrower{}
	err := s.Scan(&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.PhoneNumber, &b.IssueDate, &b.DueDate, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}
