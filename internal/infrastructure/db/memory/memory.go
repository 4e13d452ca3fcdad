// Package memory keeps library records in process memory. It backs
// STORE_DRIVER=memory and the end-to-end HTTP tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/librarium/library-api/internal/core/domain"
)

// table is a concurrency-safe id-keyed map of copies.
type table[T any] struct {
	mu      sync.RWMutex
	rows    map[string]T
	idOf    func(*T) string
	created func(*T) int64
}

func newTable[T any](idOf func(*T) string, created func(*T) int64) *table[T] {
	return &table[T]{rows: make(map[string]T), idOf: idOf, created: created}
}

func (t *table[T]) Create(_ context.Context, v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.idOf(v)
	if _, ok := t.rows[id]; ok {
		return domain.ErrConflict
	}
	t.rows[id] = *v
	return nil
}

func (t *table[T]) FindByID(_ context.Context, id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

// List returns copies ordered by creation time.
func (t *table[T]) List(_ context.Context) ([]*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0, len(t.rows))
	for _, v := range t.rows {
		v := v
		out = append(out, &v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := t.created(out[i]), t.created(out[j])
		if ci != cj {
			return ci < cj
		}
		return t.idOf(out[i]) < t.idOf(out[j])
	})
	return out, nil
}

func (t *table[T]) Update(_ context.Context, v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.idOf(v)
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	t.rows[id] = *v
	return nil
}

func (t *table[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

type BookRepository struct{ *table[domain.Book] }

func NewBookRepository() *BookRepository {
	return &BookRepository{newTable(
		func(b *domain.Book) string { return b.ID },
		func(b *domain.Book) int64 { return b.CreatedAt.UnixNano() },
	)}
}

type AuthorRepository struct{ *table[domain.Author] }

func NewAuthorRepository() *AuthorRepository {
	return &AuthorRepository{newTable(
		func(a *domain.Author) string { return a.ID },
		func(a *domain.Author) int64 { return a.CreatedAt.UnixNano() },
	)}
}

type BorrowerRepository struct{ *table[domain.Borrower] }

func NewBorrowerRepository() *BorrowerRepository {
	return &BorrowerRepository{newTable(
		func(b *domain.Borrower) string { return b.ID },
		func(b *domain.Borrower) int64 { return b.CreatedAt.UnixNano() },
	)}
}

// Repositories bundles a fresh set of empty in-memory repositories.
type Repositories struct {
	Users     *UserRepository
	Books     *BookRepository
	Authors   *AuthorRepository
	Borrowers *BorrowerRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Users:     NewUserRepository(),
		Books:     NewBookRepository(),
		Authors:   NewAuthorRepository(),
		Borrowers: NewBorrowerRepository(),
	}
}
