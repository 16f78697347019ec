package handler

import (
	"net/http"

	"github.com/communityhub/waitlist-service/internal/dto"
	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/communityhub/waitlist-service/internal/service"
	"github.com/labstack/echo/v4"
)

type WaitlistHandler struct {
	waitlistService service.WaitlistService
	lotteryService  service.LotteryService
}

func NewWaitlistHandler(waitlistService service.WaitlistService, lotteryService service.LotteryService) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistService: waitlistService,
		lotteryService:  lotteryService,
	}
}

func (h *WaitlistHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/events/:id/waitlist", h.Join)
	g.DELETE("/events/:id/waitlist/:userId", h.Leave)
	g.GET("/events/:id/waitlist", h.ListEntries)
	g.GET("/events/:id/waitlist/counts", h.Counts)
	g.POST("/events/:id/waitlist/:userId/invite", h.Invite)
	g.POST("/events/:id/lottery", h.RunLottery)
	g.POST("/events/:id/invitation/respond", h.RespondToInvitation)
	g.POST("/events/:id/invitation/cancel", h.CancelInvite)
	g.POST("/events/:id/invitation/expire", h.ExpireInvitations)
	g.GET("/users/:id/history", h.History)
}

func (h *WaitlistHandler) Join(c echo.Context) error {
	var req dto.JoinWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id is required"})
	}

	var location *models.GeoPoint
	if req.Lat != nil && req.Lng != nil {
		location = &models.GeoPoint{Lat: *req.Lat, Lng: *req.Lng}
	}

	entry, err := h.waitlistService.Join(c.Request().Context(), req.UserID, c.Param("id"), location)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *WaitlistHandler) Leave(c echo.Context) error {
	err := h.waitlistService.Leave(c.Request().Context(), c.Param("userId"), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WaitlistHandler) ListEntries(c echo.Context) error {
	var status *models.EntryStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := models.EntryStatus(raw)
		switch s {
		case models.StatusWaiting, models.StatusInvited, models.StatusAccepted,
			models.StatusDeclined, models.StatusCancelled:
			status = &s
		default:
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "unknown status"})
		}
	}

	entries, err := h.waitlistService.ListEntries(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

func (h *WaitlistHandler) Counts(c echo.Context) error {
	counts, err := h.waitlistService.WaitlistCounts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.WaitlistCountsResponse{EventID: c.Param("id"), Counts: counts})
}

func (h *WaitlistHandler) Invite(c echo.Context) error {
	var req dto.InviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}
	err := h.waitlistService.Invite(c.Request().Context(), req.OrganizerID, c.Param("id"), c.Param("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WaitlistHandler) RunLottery(c echo.Context) error {
	var req dto.RunLotteryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	result, err := h.lotteryService.RunLottery(c.Request().Context(), req.OrganizerID, c.Param("id"), req.SampleSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToLotteryResultResponse(result))
}

func (h *WaitlistHandler) RespondToInvitation(c echo.Context) error {
	var req dto.RespondInvitationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id is required"})
	}

	err := h.waitlistService.RespondToInvitation(c.Request().Context(), c.Param("id"), req.UserID, req.Accepted)
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WaitlistHandler) CancelInvite(c echo.Context) error {
	var req dto.CancelInviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	err := h.waitlistService.CancelInvite(c.Request().Context(), req.OrganizerID, c.Param("id"), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WaitlistHandler) ExpireInvitations(c echo.Context) error {
	var req dto.ExpireInvitationsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	cancelled, err := h.waitlistService.CancelNonRegistered(c.Request().Context(), c.Param("id"), req.Deadline)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ExpireInvitationsResponse{Cancelled: cancelled})
}

func (h *WaitlistHandler) History(c echo.Context) error {
	entries, err := h.waitlistService.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}
