package view

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dbTimeout = 30 * time.Second

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatTime formats an optional timestamp, blank when unset.
func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Local().Format("2006-01-02 15:04")
}

// ShortID keeps the first block of a UUID for table columns.
func ShortID(id uuid.UUID) string {
	s, _, _ := strings.Cut(id.String(), "-")
	return s
}

// DbCtx returns a context with a standard timeout for database operations.
// Rendering and provider calls run inside it, so it is generous.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
