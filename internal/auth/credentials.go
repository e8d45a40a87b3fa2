package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rgoulding/notekeep/internal/model"
	"github.com/rgoulding/notekeep/internal/store"
)

// ErrInvalidCredentials covers both "no such user" and "wrong password".
// Callers get one error for both so the response cannot reveal whether an
// email is registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials registers users and verifies logins against the user store.
type Credentials struct {
	users     *store.UserStore
	cost      int
	dummyHash string
}

func NewCredentials(users *store.UserStore, cost int) *Credentials {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	// Compared against on the unknown-email path so that path costs the
	// same as a real password check.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("notekeep"), cost)
	return &Credentials{users: users, cost: cost, dummyHash: string(dummy)}
}

// Register creates a new user with a hashed password. Returns
// store.ErrDuplicateEmail when the email is already registered.
func (c *Credentials) Register(name, email, password string) (*model.User, error) {
	hash, err := HashPassword(password, c.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return c.users.Create(name, email, hash)
}

// Verify checks email/password and returns the user's id on success.
func (c *Credentials) Verify(email, password string) (int64, error) {
	user, err := c.users.GetByEmail(email)
	if err != nil {
		return 0, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		CheckPassword(c.dummyHash, password)
		return 0, ErrInvalidCredentials
	}
	if !CheckPassword(user.PasswordHash, password) {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

// GetByID returns the user's profile, or store.ErrNotFound. The password
// hash never reaches clients: model.User excludes it from JSON.
func (c *Credentials) GetByID(id int64) (*model.User, error) {
	user, err := c.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, store.ErrNotFound
	}
	return user, nil
}
