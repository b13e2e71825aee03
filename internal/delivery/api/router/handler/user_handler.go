// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"polystore/internal/delivery/api/response"
	"polystore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler exposes the user CRUD endpoints.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type createUserRequest struct {
	Name  string `json:"name" form:"name" query:"name" validate:"required"`
	Email string `json:"email" form:"email" query:"email" validate:"required,email"`
}

type updateUserRequest struct {
	ID    string `param:"id" json:"-"`
	Name  string `json:"name" form:"name" query:"name" validate:"required"`
	Email string `json:"email" form:"email" query:"email" validate:"required,email"`
}

type searchUsersRequest struct {
	Name  string `query:"name"`
	Email string `query:"email"`
}

// bindUserInput reads name and email from the query string and then the body, so either
// form of the request works. echo's Bind only looks at the query string for GET, DELETE and HEAD.
func bindUserInput(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, req); err != nil {
		return err
	}

	return c.Bind(req)
}

// CreateUser handles POST /user.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := bindUserInput(c, &req); err != nil {
		return response.BindingError(c, "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user)
}

// UpdateUser handles PUT /user/:id.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := bindUserInput(c, &req); err != nil {
		return response.BindingError(c, "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), &usecase.UpdateUserInput{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// DeleteUser handles both GET /user/delete/:id and DELETE /user/:id.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "success delete "+id)
}

// GetUser handles GET /user/:id. An absent user renders as "data": null.
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.uc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if user == nil {
		return response.Success(c, http.StatusOK, nil)
	}

	return response.Success(c, http.StatusOK, user)
}

// ListUsers handles GET /user/list.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users)
}

// SearchUsers handles GET /user/search?name=&email=.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	var req searchUsersRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid search query")
	}

	users, err := h.uc.SearchUsers(c.Request().Context(), &usecase.SearchUsersInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users)
}
