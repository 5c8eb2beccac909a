package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
)

func performFailing(t *testing.T, err error) (int, map[string]any) {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerMapsKinds(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperr.NewValidation("grams must be positive"), fiber.StatusBadRequest},
		{"not found", apperr.NewNotFound("order not found"), fiber.StatusNotFound},
		{"access denied", apperr.NewAccessDenied("not your order"), fiber.StatusForbidden},
		{"signature", apperr.NewSignature("payment signature verification failed"), fiber.StatusBadRequest},
		{"already settled", apperr.NewAlreadySettled("payment already settled"), fiber.StatusConflict},
		{"gateway", apperr.NewGateway("payment gateway unreachable", nil), fiber.StatusBadGateway},
		{"configuration", apperr.NewConfiguration("no platform admin account exists"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := performFailing(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestErrorHandlerMapsWrappedErrors(t *testing.T) {
	status, _ := performFailing(t, fmtWrap(apperr.NewNotFound("order not found")))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func fmtWrap(err error) error {
	return errors.Join(errors.New("load order"), err)
}

func TestErrorHandlerPassesThroughFiberErrors(t *testing.T) {
	status, body := performFailing(t, fiber.NewError(fiber.StatusUnauthorized, "unauthorized"))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", body["message"])
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	status, body := performFailing(t, errors.New("pq: connection reset"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body["message"])
}
