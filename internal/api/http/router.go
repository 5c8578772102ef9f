package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/http/handlers"
	"github.com/spec-kit/triage-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Tickets         *handlers.TicketsHandler
	Knowledge       *handlers.KnowledgeHandler
	Agents          *handlers.AgentsHandler
	AgentMiddleware *auth.AgentMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/agents/register", cfg.Agents.Register)
	authGroup.Post("/agents/login", cfg.Agents.Login)

	// Customer-facing intake and feedback stay unauthenticated.
	app.Post("/tickets", cfg.Tickets.SubmitTicket)
	app.Post("/tickets/:id/feedback", cfg.Tickets.RecordFeedback)

	agentOnly := cfg.AgentMiddleware.Handle
	app.Get("/tickets", agentOnly, cfg.Tickets.ListTickets)
	app.Get("/tickets/:id", agentOnly, cfg.Tickets.GetTicket)
	app.Post("/tickets/:id/response", agentOnly, cfg.Tickets.RespondToTicket)

	app.Get("/knowledge", agentOnly, cfg.Knowledge.List)
	app.Post("/knowledge", agentOnly, cfg.Knowledge.Create)
}
