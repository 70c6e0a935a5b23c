package table

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidNumber   = errors.New("table number must be positive")
	ErrInvalidCapacity = errors.New("table capacity must be positive")
	ErrInvalidStatus   = errors.New("invalid table status")
)

type Table struct {
	id        uuid.UUID
	number    int32
	capacity  int32
	location  string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewTable(number, capacity int32, location string, now time.Time) (*Table, error) {
	if number <= 0 {
		return nil, ErrInvalidNumber
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &Table{
		id:        uuid.New(),
		number:    number,
		capacity:  capacity,
		location:  strings.TrimSpace(location),
		status:    StatusAvailable,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	number, capacity int32,
	location string,
	status Status,
	createdAt, updatedAt time.Time,
) *Table {
	return &Table{
		id:        id,
		number:    number,
		capacity:  capacity,
		location:  location,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (t *Table) IsAvailable() bool {
	return t.status == StatusAvailable
}

func (t *Table) Seats(guests int32) bool {
	return t.capacity >= guests
}

func (t *Table) ID() uuid.UUID        { return t.id }
func (t *Table) Number() int32        { return t.number }
func (t *Table) Capacity() int32      { return t.capacity }
func (t *Table) Location() string     { return t.location }
func (t *Table) Status() Status       { return t.status }
func (t *Table) CreatedAt() time.Time { return t.createdAt }
func (t *Table) UpdatedAt() time.Time { return t.updatedAt }
