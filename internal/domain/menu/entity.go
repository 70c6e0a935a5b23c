package menu

import (
	"errors"
	"strings"
	"time"

	"restobook/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("menu item name must not be empty")
	ErrInvalidPrice = errors.New("menu item price cannot be negative")
)

type Item struct {
	id          uuid.UUID
	name        string
	description string
	price       money.Money
	category    string
	available   bool
	imageURL    string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewItem(name, description string, price money.Money, category, imageURL string, now time.Time) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	return &Item{
		id:          uuid.New(),
		name:        name,
		description: strings.TrimSpace(description),
		price:       price,
		category:    strings.TrimSpace(category),
		available:   true,
		imageURL:    imageURL,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	name, description string,
	price money.Money,
	category string,
	available bool,
	imageURL string,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		category:    category,
		available:   available,
		imageURL:    imageURL,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (i *Item) Update(name, description string, price money.Money, category string, available bool, imageURL string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	i.name = name
	i.description = strings.TrimSpace(description)
	i.price = price
	i.category = strings.TrimSpace(category)
	i.available = available
	i.imageURL = imageURL
	i.updatedAt = now
	return nil
}

func (i *Item) ID() uuid.UUID        { return i.id }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Price() money.Money   { return i.price }
func (i *Item) Category() string     { return i.category }
func (i *Item) Available() bool      { return i.available }
func (i *Item) ImageURL() string     { return i.imageURL }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }
