package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/config"
	handlers "github.com/safenest/trustpipe/pkg/handlers/http"
	"github.com/safenest/trustpipe/pkg/middleware"
)

type (
	ApiServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	ApiServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewApiServer(di ApiServerDI) *ApiServer {
	return &ApiServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *ApiServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()
	addr := fmt.Sprintf(":%d", s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("Starting moderation server")
	return s.Router.Listen(addr)
}

func (s *ApiServer) setupRoutes() {
	s.Router.Use(s.middlewareTransport.PanicRecoverMiddleware.Middleware())
	s.Router.Use(s.middlewareTransport.MetricsMiddleware.Middleware())

	v1 := s.Router.Group("/api/v1")
	{
		moderationGroup := v1.Group("/moderation")
		{
			moderationGroup.Post("/evaluate", s.handlerTransport.EvaluateHandler.Handle)
			moderationGroup.Post("/evaluate-image", s.handlerTransport.EvaluateImageHandler.Handle)
		}

		chat := v1.Group("/chat")
		{
			chat.Post("/messages", s.handlerTransport.SendMessageHandler.Handle)
		}

		admin := v1.Group("/admin", s.middlewareTransport.AdminAuthMiddleware.Middleware())
		{
			admin.Get("/events", s.handlerTransport.ListEventsHandler.Handle)
			admin.Post("/users/:user_id/suspend", s.handlerTransport.SuspendUserHandler.Handle)
			admin.Delete("/users/:user_id/suspend", s.handlerTransport.LiftSuspensionHandler.Handle)
		}

		notifications := v1.Group("/notifications", s.middlewareTransport.AdminAuthMiddleware.Middleware())
		{
			notifications.Get("", s.handlerTransport.ListNotificationsHandler.Handle)
			notifications.Post("/:notification_id/dismiss", s.handlerTransport.DismissNotificationHandler.Handle)
		}
	}
}

func (s *ApiServer) Shutdown() error {
	return s.Router.Shutdown()
}
