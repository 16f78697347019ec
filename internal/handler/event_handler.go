package handler

import (
	"io"
	"net/http"

	"github.com/communityhub/waitlist-service/internal/dto"
	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/communityhub/waitlist-service/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	eventService   service.EventService
	cascadeService service.CascadeService
}

func NewEventHandler(eventService service.EventService, cascadeService service.CascadeService) *EventHandler {
	return &EventHandler{
		eventService:   eventService,
		cascadeService: cascadeService,
	}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/events", h.CreateEvent)
	g.GET("/events/:id", h.GetEvent)
	g.GET("/events/:id/status", h.GetEventStatus)
	g.DELETE("/events/:id", h.DeleteEvent)
	g.PUT("/events/:id/geolocation", h.SetGeolocation)
	g.PUT("/events/:id/images/:kind", h.UploadImage)
	g.GET("/organizers/:id/events", h.ListByOrganizer)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}
	if req.Title == "" || req.OrganizerID == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "title and organizer_id are required"})
	}

	event, err := h.eventService.CreateEvent(c.Request().Context(), service.CreateEventInput{
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		OrganizerID:      req.OrganizerID,
		MaxCapacity:      req.MaxCapacity,
		WaitlistCapacity: req.WaitlistCapacity,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandler) GetEventStatus(c echo.Context) error {
	status, err := h.eventService.GetEventStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	steps, err := h.cascadeService.DeleteEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.CascadeReportResponse{Steps: steps})
}

func (h *EventHandler) SetGeolocation(c echo.Context) error {
	var req dto.SetGeolocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}
	err := h.eventService.SetGeolocationRequirement(c.Request().Context(), req.OrganizerID, c.Param("id"), req.Required)
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) UploadImage(c echo.Context) error {
	kind := models.ImageKind(c.Param("kind"))
	if kind != models.ImagePoster && kind != models.ImageQRCode {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "kind must be poster or qrcode"})
	}
	organizerID := c.QueryParam("organizer_id")
	if organizerID == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "organizer_id is required"})
	}

	data, err := io.ReadAll(c.Request().Body)
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "image body is required"})
	}

	image, err := h.eventService.SetEventImage(c.Request().Context(), organizerID, c.Param("id"), kind, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, image)
}

func (h *EventHandler) ListByOrganizer(c echo.Context) error {
	events, err := h.eventService.ListByOrganizer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
