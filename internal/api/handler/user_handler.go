package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarium/library-api/internal/api/metrics"
	"github.com/librarium/library-api/internal/api/response"
	"github.com/librarium/library-api/internal/api/validation"
	"github.com/librarium/library-api/internal/core/domain"
	"github.com/librarium/library-api/internal/core/ports"
)

type UserHandler struct {
	authService ports.AuthService
	userService ports.UserService
}

func NewUserHandler(authService ports.AuthService, userService ports.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

func toRegisterInput(f validation.Fields) ports.RegisterInput {
	return ports.RegisterInput{
		FirstName: f.String("firstName"),
		LastName:  f.String("lastName"),
		Username:  f.String("username"),
		Email:     f.String("email"),
		Password:  f.String("password"),
	}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  response.Envelope{data=domain.User}
// @Failure      400   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	fields, ok, err := validRequest(c, validation.OpRegisterUser)
	if !ok {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "validation_failed").Inc()
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), toRegisterInput(fields))
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
			return response.Failure(c, http.StatusConflict, "User with this email or username already exists")
		}
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	metrics.RecordsCreatedTotal.WithLabelValues(domain.EntityUser).Inc()
	return response.Success(c, http.StatusCreated, fmt.Sprintf("User with email %s created successfully", user.Email), user)
}

// Login authenticates a user and returns an access token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{data=loginResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	fields, ok, err := validRequest(c, validation.OpLoginUser)
	if !ok {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "validation_failed").Inc()
		return err
	}

	email := fields.String("email")
	token, _, err := h.authService.Login(c.Request().Context(), email, fields.String("password"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
			return response.Failure(c, http.StatusForbidden, "Invalid credentials")
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return response.Success(c, http.StatusOK, fmt.Sprintf("User with email %s logged in successfully", email), loginResponse{AccessToken: token})
}

// List returns every user.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]domain.User}
// @Failure      401  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return response.Failure(c, http.StatusNotFound, "There is no users found in the database")
	}
	return response.Success(c, http.StatusOK, "Users fetched successfully", users)
}

// Get returns a single user.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  response.Envelope{data=domain.User}
// @Failure      401  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id := c.Param("id")
	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.Failure(c, http.StatusNotFound, fmt.Sprintf("User with id %s not found in the database", id))
		}
		return err
	}
	return response.Success(c, http.StatusOK, fmt.Sprintf("User with id %s fetched successfully", id), user)
}

// Update replaces a user's profile and password.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "User id"
// @Param        body  body      registerRequest  true  "Replacement user details"
// @Success      200   {object}  response.Envelope{data=domain.User}
// @Failure      400   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	fields, ok, err := validRequest(c, validation.OpUpdateUser)
	if !ok {
		return err
	}

	id := c.Param("id")
	user, err := h.userService.Update(c.Request().Context(), id, toRegisterInput(fields))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.Failure(c, http.StatusNotFound, fmt.Sprintf("User with id %s not found", id))
		case errors.Is(err, domain.ErrUserExists):
			return response.Failure(c, http.StatusConflict, "User with this email or username already exists")
		}
		return err
	}
	return response.Success(c, http.StatusOK, "User updated successfully", user)
}

// Delete removes a user account.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.Failure(c, http.StatusNotFound, fmt.Sprintf("User with id %s not found", id))
		}
		return err
	}
	return response.Success(c, http.StatusOK, fmt.Sprintf("User with id %s deleted successfully", id), nil)
}
