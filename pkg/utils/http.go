package utils

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var ErrInvalidID = errors.New("invalid id")

// Detail writes the error body shared by every service: {"detail": ...}.
func Detail(c *fiber.Ctx, status int, detail any) error {
	return c.Status(status).JSON(fiber.Map{
		"detail": detail,
	})
}

// ErrorHandler renders errors that escape handlers (unknown routes, body limits, panics).
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		detail := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			detail = fiberErr.Message
		} else {
			logger.Error(
				"Unhandled error",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return Detail(c, code, detail)
	}
}

// ParamID parses a positive integer path parameter.
func ParamID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

var ErrInvalidPagination = errors.New("skip must be >= 0 and limit between 1 and 1000")

// Pagination reads the skip and limit query parameters.
func Pagination(c *fiber.Ctx) (limit, offset int64, err error) {
	limit, offset = DefaultLimit, 0

	if raw := c.Query("skip"); raw != "" {
		offset, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || offset < 0 {
			return 0, 0, ErrInvalidPagination
		}
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 1 || limit > MaxLimit {
			return 0, 0, ErrInvalidPagination
		}
	}

	return limit, offset, nil
}
