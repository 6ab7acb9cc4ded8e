package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wardlink/hospital-system/internal/api/metrics"
	"github.com/wardlink/hospital-system/internal/core/domain"
	"github.com/wardlink/hospital-system/internal/core/ports"
)

// UserHandler exposes the role-filtered user directory. Creation goes
// through the auth service so new accounts get the full registration path
// (duplicate check, image upload, password hashing).
type UserHandler struct {
	users       ports.UserService
	authService ports.AuthService
}

func NewUserHandler(users ports.UserService, authService ports.AuthService) *UserHandler {
	return &UserHandler{users: users, authService: authService}
}

// List returns the users visible to the caller's role.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	users, err := h.users.FindAll(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns a single user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, user.Sanitized())
}

// Create registers a new user through the full registration path.
//
// @Summary      Create a user
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := formImage(c)
	if err != nil {
		return err
	}
	if image != nil {
		defer image.close()
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Display:  req.Display,
		Role:     domain.Role(req.Role),
		WardID:   req.WardID,
	}, image.upload())
	if err != nil {
		return err
	}

	metrics.DirectoryMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, user)
}

// Update applies a partial update, optionally replacing the profile picture.
//
// @Summary      Update a user
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := formImage(c)
	if err != nil {
		return err
	}
	if image != nil {
		defer image.close()
	}

	in := ports.UpdateUserInput{
		Display: req.Display,
		WardID:  req.WardID,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), in, image.upload())
	if err != nil {
		return err
	}

	metrics.DirectoryMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, user.Sanitized())
}

// Delete removes a user and its profile picture.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.users.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.DirectoryMutationsTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, user.Sanitized())
}
