package handler

import (
	"net/http"
	"strconv"

	"github.com/communityhub/waitlist-service/internal/dto"
	"github.com/communityhub/waitlist-service/internal/service"
	"github.com/labstack/echo/v4"
)

const defaultNotificationLimit = 50

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/events/:id/broadcast", h.Broadcast)
	g.GET("/events/:id/notifications", h.EventLogs)
	g.GET("/users/:id/notifications", h.ListForUser)
	g.POST("/notifications/:id/dismiss", h.Dismiss)
}

func (h *NotificationHandler) Broadcast(c echo.Context) error {
	var req dto.BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	ctx := c.Request().Context()
	eventID := c.Param("id")

	var recipients int
	var err error
	switch req.Audience {
	case "waitlist":
		recipients, err = h.notificationService.BroadcastToWaitlist(ctx, req.OrganizerID, eventID, req.Title, req.Message)
	case "invited":
		recipients, err = h.notificationService.BroadcastToInvited(ctx, req.OrganizerID, eventID, req.Title, req.Message)
	case "cancelled":
		recipients, err = h.notificationService.BroadcastToCancelled(ctx, req.OrganizerID, eventID, req.Title, req.Message)
	default:
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "audience must be waitlist, invited or cancelled"})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.BroadcastResponse{Recipients: recipients})
}

func (h *NotificationHandler) EventLogs(c echo.Context) error {
	notifications, err := h.notificationService.GetNotificationLogs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToNotificationResponses(notifications))
}

func (h *NotificationHandler) ListForUser(c echo.Context) error {
	limit := defaultNotificationLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "limit must be a positive integer"})
		}
		limit = parsed
	}

	notifications, err := h.notificationService.ListUserNotifications(
		c.Request().Context(), c.Param("id"), limit, c.QueryParam("after"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToNotificationResponses(notifications))
}

func (h *NotificationHandler) Dismiss(c echo.Context) error {
	if err := h.notificationService.Dismiss(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
