package accounts

import (
	"encoding/json"
	"fmt"

	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
)

// usersKey is the durable store key holding the whole user collection.
const usersKey = "users"

// Repository owns the durable user collection. All users are kept under a
// single key as one JSON array, so every write replaces the full record.
// Deserialization happens here, once per read, and malformed text surfaces
// as ErrMalformedRecord instead of leaking garbage to callers.
type Repository struct {
	store storage.Store
}

// NewRepository returns a repository over the given durable store.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load returns every registered user. A missing record means nobody has
// registered yet and is not an error.
func (r *Repository) Load() ([]models.User, error) {
	raw, ok, err := r.store.Get(usersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	for i, u := range users {
		if u.ID == "" || u.Email == "" {
			return nil, fmt.Errorf("%w: user %d has no id or email", ErrMalformedRecord, i)
		}
	}
	return users, nil
}

func (r *Repository) save(users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return r.store.Set(usersKey, string(raw))
}

// FindByID returns the stored snapshot for id, or ErrUserNotFound.
func (r *Repository) FindByID(id string) (models.User, error) {
	users, err := r.Load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// Add appends a new user record. Email uniqueness is the caller's check;
// the repository only moves records in and out of the store.
func (r *Repository) Add(user models.User) error {
	users, err := r.Load()
	if err != nil {
		return err
	}
	return r.save(append(users, user))
}

// Persist overwrites the stored record for user.ID with a new snapshot.
// ErrUserNotFound when the id has vanished from the store; nothing is
// written in that case.
func (r *Repository) Persist(user models.User) error {
	users, err := r.Load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			return r.save(users)
		}
	}
	return ErrUserNotFound
}
