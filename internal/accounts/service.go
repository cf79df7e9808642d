package accounts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"finance-tracker/internal/models"

	"github.com/go-playground/validator/v10"
)

// Service implements registration and login over the durable user
// collection, keeping the session snapshot in step with it.
type Service struct {
	repo     *Repository
	session  *Session
	validate *validator.Validate
	now      func() time.Time
}

type registerInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// NewService wires a service over the given repository and session.
func NewService(repo *Repository, session *Session) *Service {
	return &Service{
		repo:     repo,
		session:  session,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Register creates a user with an empty transaction list, persists it and
// makes it the active session. ErrDuplicateEmail when any existing user has
// the same email (exact, case-sensitive match).
func (s *Service) Register(name, email, password string) (models.User, error) {
	in := registerInput{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := s.validate.Struct(in); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	users, err := s.repo.Load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Email == in.Email {
			return models.User{}, ErrDuplicateEmail
		}
	}

	user := models.User{
		ID:           s.newID(),
		Name:         in.Name,
		Email:        in.Email,
		Password:     in.Password,
		Transactions: []models.Transaction{},
	}
	if err := s.repo.Add(user); err != nil {
		return models.User{}, err
	}
	if err := s.session.Set(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate scans all users for an exact email+password match and makes
// the match the active session. Passwords are compared as stored; hashing,
// rate limiting and lockout are out of scope for this tier of system.
func (s *Service) Authenticate(email, password string) (models.User, error) {
	users, err := s.repo.Load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			if err := s.session.Set(u); err != nil {
				return models.User{}, err
			}
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// Logout clears the session snapshot. The durable store is untouched.
func (s *Service) Logout() error {
	return s.session.Clear()
}

// Refresh replaces the session snapshot with the authoritative repository
// copy. Callers invoke it after every transaction mutation; a stale session
// would display transactions inconsistent with the durable store.
func (s *Service) Refresh() error {
	current, err := s.session.Current()
	if err != nil {
		return err
	}
	fresh, err := s.repo.FindByID(current.ID)
	if err != nil {
		return err
	}
	return s.session.Set(fresh)
}

// newID derives an identifier from the creation instant, the same scheme
// the ledger uses for transaction ids.
func (s *Service) newID() string {
	return strconv.FormatInt(s.now().UnixNano(), 10)
}
