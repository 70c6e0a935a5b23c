package feedback

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong  = errors.New("comment exceeds the maximum length")
	ErrInvalidCategory = errors.New("invalid feedback category")
	ErrInvalidStatus   = errors.New("invalid feedback status")
)

const maxCommentLength = 1000

type Rating struct {
	value int32
}

func NewRating(value int32) (Rating, error) {
	if value < 1 || value > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: value}, nil
}

func (r Rating) Value() int32 {
	return r.value
}

// Comment is optional free text; a blank comment is a valid rating-only entry.
type Comment struct {
	value string
}

func NewComment(value string) (Comment, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > maxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{value: trimmed}, nil
}

func (c Comment) String() string {
	return c.value
}
