package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps a storage error to a domain error.
// entity and ref name the row for not-found messages.
func translateError(err error, entity string, ref any) error {
	if err == nil {
		return nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(entity, ref)
	case isDuplicateKey(err):
		return shared.NewConflictError(fmt.Sprintf("%s %v already exists", entity, ref), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return shared.NewInternalError("request cancelled before commit", err)
	default:
		return shared.NewInternalError(fmt.Sprintf("failed to access %s", entity), err)
	}
}

// isDuplicateKey reports a unique constraint violation. Dialectors built with
// TranslateError return gorm.ErrDuplicatedKey; the message checks cover
// connections opened without it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}
