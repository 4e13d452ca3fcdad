package memory

import (
	"context"
	"errors"

	"github.com/librarium/library-api/internal/core/domain"
)

// UserRepository enforces unique emails and usernames like the database indexes do.
type UserRepository struct {
	users *table[domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: newTable(
		func(u *domain.User) string { return u.ID },
		func(u *domain.User) int64 { return u.CreatedAt.UnixNano() },
	)}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()

	if _, ok := r.users.rows[u.ID]; ok || r.taken(u) {
		return nil, domain.ErrUserExists
	}
	r.users.rows[u.ID] = *u
	out := *u
	return &out, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.users.mu.RLock()
	defer r.users.mu.RUnlock()

	for _, u := range r.users.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.users.List(ctx)
}

func (r *UserRepository) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()

	if _, ok := r.users.rows[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	if r.taken(u) {
		return nil, domain.ErrUserExists
	}
	r.users.rows[u.ID] = *u
	out := *u
	return &out, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	err := r.users.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}

// taken reports whether another user already owns u's email or username.
// Callers hold the lock.
func (r *UserRepository) taken(u *domain.User) bool {
	for id, other := range r.users.rows {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email || other.Username == u.Username {
			return true
		}
	}
	return false
}
