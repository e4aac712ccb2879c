// Package services holds the domain rules. Each operation mutates through a
// repository first and then publishes its side effects to an events.Sink.
package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/events"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

// Clock returns the current time in UTC.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now().UTC() }

var strictPolicy = bluemonday.StrictPolicy()

// cleanText trims and enforces a rune length range. Text that the strict
// policy would alter is rejected rather than stored with pieces missing.
func cleanText(raw string, field string, min, max int) (string, error) {
	text := strings.TrimSpace(raw)
	if html.UnescapeString(strictPolicy.Sanitize(text)) != text {
		return "", apperr.Validation(field + " must not contain markup")
	}
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return "", apperr.Validation(field + " cannot be empty")
	}
	if n < min {
		return "", apperr.Validation(fmt.Sprintf("%s must be at least %d characters", field, min))
	}
	if n > max {
		return "", apperr.Validation(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return text, nil
}

func requireRole(u *models.User, role models.Role, msg string) error {
	if u.Role != role {
		return apperr.Forbidden(msg)
	}
	return nil
}

// publisher wraps the sink so a failed side effect is logged and reported
// as Internal while the primary mutation stays committed.
type publisher struct {
	sink events.Sink
	log  *slog.Logger
}

func (p publisher) emit(ctx context.Context, evt events.Event) error {
	if p.sink == nil {
		return nil
	}
	if err := p.sink.Publish(ctx, evt); err != nil {
		p.log.Error("notification fan-out failed",
			"type", evt.Type, "recipient_id", evt.RecipientID, "reference_id", evt.ReferenceID, "error", err)
		return apperr.Internal("Failed to create notification", err)
	}
	return nil
}
