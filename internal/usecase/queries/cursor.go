package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"restobook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.New("invalid pagination cursor")

const (
	DefaultListLimit = 20
	MaxListLimit     = 200

	cursorVersion = "v1"
)

// Cursor is an opaque keyset position. List endpoints hand the caller the
// cursor of the last returned row; passing it back resumes the walk after
// that row instead of re-counting with OFFSET.
type Cursor struct {
	After string `json:"after,omitempty"`
}

// EncodeAfterCursor packs the (created_at, id) sort key of a row into an
// opaque token. Microsecond precision matches what timestamptz stores, so a
// round trip through the cursor lands on the exact same key.
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	raw := fmt.Sprintf("%s:%d-%s", cursorVersion, t.UnixMicro(), id.String())
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func DecodeAfterCursor(after string) (time.Time, uuid.UUID, error) {
	decoded, err := base64.URLEncoding.DecodeString(after)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Mark(err, ErrInvalidCursor)
	}

	rest, ok := strings.CutPrefix(string(decoded), cursorVersion+":")
	if !ok {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	micros, idPart, ok := strings.Cut(rest, "-")
	if !ok {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}

	unixMicro, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Mark(err, ErrInvalidCursor)
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Mark(err, ErrInvalidCursor)
	}

	return time.UnixMicro(unixMicro).UTC(), id, nil
}

// ValidateLimit clamps a caller-supplied page size into [1, MaxListLimit],
// substituting the default for zero or negative values.
func ValidateLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
