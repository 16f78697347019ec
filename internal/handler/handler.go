package handler

import (
	"errors"
	"net/http"

	"github.com/communityhub/waitlist-service/internal/dto"
	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/communityhub/waitlist-service/internal/service"
	"github.com/labstack/echo/v4"
)

// respondError maps service errors to HTTP responses: not-found 404,
// state-conflict and capacity 409, authorization 403, validation 400,
// anything else 500.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})

	case errors.Is(err, service.ErrAlreadyOnWaitlist),
		errors.Is(err, service.ErrNotOnWaitlist),
		errors.Is(err, service.ErrCannotLeaveAfterAccepting),
		errors.Is(err, service.ErrInviteNotPending),
		errors.Is(err, service.ErrEntryNotWaiting),
		errors.Is(err, service.ErrWaitlistFull),
		errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrNoAvailableSlots),
		errors.Is(err, models.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})

	case errors.Is(err, service.ErrNotOrganizer):
		return c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})

	case errors.Is(err, service.ErrCapacityNotSet),
		errors.Is(err, service.ErrInvalidSampleSize),
		errors.Is(err, service.ErrEmptyWaitlist),
		errors.Is(err, service.ErrDeadlineNotPassed):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})

	default:
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}
}
