package handler

import (
	"net/http"

	"github.com/communityhub/waitlist-service/internal/dto"
	"github.com/communityhub/waitlist-service/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService    service.UserService
	cascadeService service.CascadeService
}

func NewUserHandler(userService service.UserService, cascadeService service.CascadeService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		cascadeService: cascadeService,
	}
}

func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/users", h.RegisterUser)
	g.GET("/users/:id", h.GetUser)
	g.DELETE("/users/:id", h.DeleteUser)
}

func (h *UserHandler) RegisterUser(c echo.Context) error {
	var req dto.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}
	if req.ID == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "id is required"})
	}

	user, err := h.userService.RegisterUser(c.Request().Context(), req.ID, req.Name, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	steps, err := h.cascadeService.DeleteUserCascade(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.CascadeReportResponse{Steps: steps})
}
