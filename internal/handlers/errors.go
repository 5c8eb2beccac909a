package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
)

// ErrorHandler translates errors escaping handlers into the uniform
// {success:false, message} envelope. Business errors map by kind; anything
// unrecognized is logged and reported generically so internals never leak.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := apperr.As(err); ok {
		return c.Status(statusForKind(appErr.Kind)).JSON(fiber.Map{
			"success": false,
			"message": appErr.Msg,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"message": fiberErr.Message,
		})
	}

	log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "internal server error",
	})
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindAccessDenied:
		return fiber.StatusForbidden
	case apperr.KindSignature:
		return fiber.StatusBadRequest
	case apperr.KindAlreadySettled:
		return fiber.StatusConflict
	case apperr.KindGateway:
		return fiber.StatusBadGateway
	case apperr.KindConfiguration:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
