package helper

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation recognises duplicate-key errors from gorm (TranslateError),
// pgx and lib/pq.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return true
	}
	// sqlite without TranslateError
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// FromDBError maps a persistence error to a JSON response. conflictMsg is used for
// unique violations, notFoundMsg for missing rows.
func FromDBError(c *fiber.Ctx, err error, notFoundMsg, conflictMsg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if notFoundMsg == "" {
			notFoundMsg = constants.MsgNotFound
		}
		return JsonError(c, fiber.StatusNotFound, notFoundMsg)
	case IsUniqueViolation(err):
		return JsonError(c, fiber.StatusConflict, conflictMsg)
	default:
		return FromError(c, err)
	}
}

// FromError turns *fiber.Error into the standard error body; anything else is
// logged and hidden behind a generic 500.
func FromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	slog.ErrorContext(c.UserContext(), "unhandled error",
		"err", err,
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals("request_id"),
	)
	return JsonError(c, fiber.StatusInternalServerError, constants.MsgInternalError)
}

// FiberErrorHandler is installed as fiber.Config.ErrorHandler.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound && fe.Message == fiber.ErrNotFound.Message {
		return JsonError(c, fiber.StatusNotFound, constants.MsgNotFound)
	}
	return FromError(c, err)
}
