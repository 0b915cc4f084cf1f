package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Moderation
	EvaluateHandler      Handler
	EvaluateImageHandler Handler

	// Chat
	SendMessageHandler Handler

	// Admin
	ListEventsHandler     Handler
	SuspendUserHandler    Handler
	LiftSuspensionHandler Handler

	// Notifications
	ListNotificationsHandler   Handler
	DismissNotificationHandler Handler
}
