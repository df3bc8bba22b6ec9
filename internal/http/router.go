package http

import (
	"github.com/gin-gonic/gin"
	"github.com/smonzon/registration-service/internal/config"
	"github.com/smonzon/registration-service/internal/http/controller"
	"github.com/smonzon/registration-service/internal/http/middleware"
)

// InitRouter wires the registration endpoints into the gin engine.
func InitRouter(_ *config.Config, server *gin.Engine, ctr *controller.Controller, regCtr *controller.RegistrationController) *gin.Engine {
	// Recovery first so panics never crash the server
	server.Use(middleware.Recovery())
	server.Use(middleware.CORS())
	server.Use(middleware.Logger())

	server.GET("/ping", ctr.Ping)

	server.POST("/registrations", regCtr.Register)
	server.GET("/users", regCtr.ListUsers)

	return server
}
