package account

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	if !emailPattern.MatchString(value) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

func (e Email) String() string {
	return e.value
}

type Account struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewAccount(email Email, passwordHash string) *Account {
	return &Account{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
	}
}

func ReconstructAccount(id uuid.UUID, email Email, passwordHash string, createdAt, updatedAt time.Time) *Account {
	return &Account{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (a *Account) ID() uuid.UUID        { return a.id }
func (a *Account) Email() Email         { return a.email }
func (a *Account) PasswordHash() string { return a.passwordHash }
func (a *Account) CreatedAt() time.Time { return a.createdAt }
func (a *Account) UpdatedAt() time.Time { return a.updatedAt }
