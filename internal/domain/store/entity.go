package store

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName  = errors.New("store name is required")
	ErrInvalidCEP = errors.New("invalid CEP")
)

// CEP accepts "01310100" or "01310-100".
var cepPattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)

func NormalizeCEP(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !cepPattern.MatchString(trimmed) {
		return "", ErrInvalidCEP
	}
	return strings.ReplaceAll(trimmed, "-", ""), nil
}

type Store struct {
	id               uuid.UUID
	accountID        uuid.UUID
	name             string
	description      string
	address          string
	cep              string
	deliveryFeeCents int64
	createdAt        time.Time
	updatedAt        time.Time
}

func NewStore(accountID uuid.UUID, name, description, address, cep string, deliveryFeeCents int64) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	normalizedCEP, err := NormalizeCEP(cep)
	if err != nil {
		return nil, err
	}

	if deliveryFeeCents < 0 {
		deliveryFeeCents = 0
	}

	return &Store{
		id:               uuid.New(),
		accountID:        accountID,
		name:             name,
		description:      description,
		address:          address,
		cep:              normalizedCEP,
		deliveryFeeCents: deliveryFeeCents,
	}, nil
}

func ReconstructStore(id, accountID uuid.UUID, name, description, address, cep string, deliveryFeeCents int64, createdAt, updatedAt time.Time) *Store {
	return &Store{
		id:               id,
		accountID:        accountID,
		name:             name,
		description:      description,
		address:          address,
		cep:              cep,
		deliveryFeeCents: deliveryFeeCents,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (s *Store) ID() uuid.UUID           { return s.id }
func (s *Store) AccountID() uuid.UUID    { return s.accountID }
func (s *Store) Name() string            { return s.name }
func (s *Store) Description() string     { return s.description }
func (s *Store) Address() string         { return s.address }
func (s *Store) CEP() string             { return s.cep }
func (s *Store) DeliveryFeeCents() int64 { return s.deliveryFeeCents }
func (s *Store) CreatedAt() time.Time    { return s.createdAt }
func (s *Store) UpdatedAt() time.Time    { return s.updatedAt }
