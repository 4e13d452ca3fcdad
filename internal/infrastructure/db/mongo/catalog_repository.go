package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/librarium/library-api/internal/core/domain"
)

const (
	collectionBooks     = "books"
	collectionAuthors   = "authors"
	collectionBorrowers = "borrowers"
)

// collection stores documents of type T keyed by their string _id.
type collection[T any] struct {
	coll *mongo.Collection
	kind string
	idOf func(*T) string
}

func (c *collection[T]) Create(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert %s: %w", c.kind, domain.ErrConflict)
		}
		return fmt.Errorf("insert %s: %w", c.kind, err)
	}
	return nil
}

func (c *collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", c.kind, err)
	}
	return &doc, nil
}

func (c *collection[T]) List(ctx context.Context) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := c.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.kind, err)
	}
	docs := []*T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.kind, err)
	}
	return docs, nil
}

func (c *collection[T]) Update(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": c.idOf(doc)}, doc)
	if err != nil {
		return fmt.Errorf("update %s: %w", c.kind, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *collection[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.kind, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type BookRepository struct {
	*collection[domain.Book]
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{&collection[domain.Book]{
		coll: db.Collection(collectionBooks),
		kind: domain.EntityBook,
		idOf: func(b *domain.Book) string { return b.ID },
	}}
}

// EnsureIndexes indexes books by ISBN and by author.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "isbn", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("book indexes: %w", err)
	}
	return nil
}

type AuthorRepository struct {
	*collection[domain.Author]
}

func NewAuthorRepository(db *mongo.Database) *AuthorRepository {
	return &AuthorRepository{&collection[domain.Author]{
		coll: db.Collection(collectionAuthors),
		kind: domain.EntityAuthor,
		idOf: func(a *domain.Author) string { return a.ID },
	}}
}

// BorrowerRepository has no Update; borrowers are replaced by delete and create.
type BorrowerRepository struct {
	inner *collection[domain.Borrower]
}

func NewBorrowerRepository(db *mongo.Database) *BorrowerRepository {
	return &BorrowerRepository{inner: &collection[domain.Borrower]{
		coll: db.Collection(collectionBorrowers),
		kind: domain.EntityBorrower,
		idOf: func(b *domain.Borrower) string { return b.ID },
	}}
}

func (r *BorrowerRepository) Create(ctx context.Context, b *domain.Borrower) error {
	return r.inner.Create(ctx, b)
}

func (r *BorrowerRepository) FindByID(ctx context.Context, id string) (*domain.Borrower, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *BorrowerRepository) List(ctx context.Context) ([]*domain.Borrower, error) {
	return r.inner.List(ctx)
}

func (r *BorrowerRepository) Delete(ctx context.Context, id string) error {
	return r.inner.Delete(ctx, id)
}
