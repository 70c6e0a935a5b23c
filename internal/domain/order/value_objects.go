package order

import (
	"errors"
	"strings"

	"restobook/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
)

// Item is a line-item snapshot: name and unit price are copied from the menu
// at order time so later menu edits never change historical orders.
type Item struct {
	menuItemID          uuid.UUID
	menuItemName        string
	quantity            int32
	unitPrice           money.Money
	specialInstructions string
}

func NewItem(menuItemID uuid.UUID, menuItemName string, quantity int32, unitPrice money.Money, specialInstructions string) (Item, error) {
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}

	return Item{
		menuItemID:          menuItemID,
		menuItemName:        menuItemName,
		quantity:            quantity,
		unitPrice:           unitPrice,
		specialInstructions: strings.TrimSpace(specialInstructions),
	}, nil
}

func (i Item) Subtotal() money.Money {
	return i.unitPrice.MulQty(i.quantity)
}

func (i Item) MenuItemID() uuid.UUID       { return i.menuItemID }
func (i Item) MenuItemName() string        { return i.menuItemName }
func (i Item) Quantity() int32             { return i.quantity }
func (i Item) UnitPrice() money.Money      { return i.unitPrice }
func (i Item) SpecialInstructions() string { return i.specialInstructions }
