// Package router registers the API routes.
package router

import (
	"polystore/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HealthHandler   *handler.HealthHandler
	UserHandler     *handler.UserHandler
	TransferHandler *handler.TransferHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	healthHandler   *handler.HealthHandler
	userHandler     *handler.UserHandler
	transferHandler *handler.TransferHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		healthHandler:   params.HealthHandler,
		userHandler:     params.UserHandler,
		transferHandler: params.TransferHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", r.healthHandler.Hello)
	e.GET("/health", r.healthHandler.HealthCheck)

	userGroup := e.Group("/user")
	{
		userGroup.POST("", r.userHandler.CreateUser)
		userGroup.GET("/list", r.userHandler.ListUsers)
		userGroup.GET("/search", r.userHandler.SearchUsers)
		userGroup.GET("/delete/:id", r.userHandler.DeleteUser)
		userGroup.POST("/transfer", r.transferHandler.Transfer)
		userGroup.GET("/:id", r.userHandler.GetUser)
		userGroup.PUT("/:id", r.userHandler.UpdateUser)
		userGroup.DELETE("/:id", r.userHandler.DeleteUser)
	}

	accountGroup := e.Group("/account")
	{
		accountGroup.POST("", r.transferHandler.CreateAccount)
		accountGroup.GET("/:id", r.transferHandler.GetAccount)
	}
}
