package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking-service/internal/api/http/handlers"
	"github.com/spec-kit/salon-booking-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Catalog         *handlers.CatalogHandler
	Appointments    *handlers.AppointmentsHandler
	Availability    *handlers.AvailabilityHandler
	Wizard          *handlers.WizardHandler
	Edit            *handlers.EditHandler
	Admin           *handlers.AdminHandler
	AdminMiddleware *auth.AdminMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/services", cfg.Catalog.ListServices)
	app.Get("/services/:id", cfg.Catalog.GetService)
	app.Get("/staff", cfg.Catalog.ListStaff)
	app.Get("/staff/:id", cfg.Catalog.GetStaffMember)

	app.Get("/availability/slots", cfg.Availability.ListSlots)

	app.Get("/appointments", cfg.Appointments.ListAppointments)
	app.Get("/appointments/:id", cfg.Appointments.GetAppointment)
	app.Post("/appointments", cfg.Appointments.CreateAppointment)
	app.Patch("/appointments/:id", cfg.Appointments.UpdateAppointment)
	app.Delete("/appointments/:id", cfg.Appointments.DeleteAppointment)
	app.Post("/appointments/:id/edit", cfg.Edit.StartSession)

	sessions := app.Group("/booking/sessions")
	sessions.Post("", cfg.Wizard.StartSession)
	sessions.Get("/:id", cfg.Wizard.GetSession)
	sessions.Delete("/:id", cfg.Wizard.Abandon)
	sessions.Put("/:id/services", cfg.Wizard.SetServices)
	sessions.Put("/:id/staff", cfg.Wizard.SetStaff)
	sessions.Put("/:id/schedule", cfg.Wizard.SetSchedule)
	sessions.Put("/:id/details", cfg.Wizard.SetDetails)
	sessions.Post("/:id/next", cfg.Wizard.Next)
	sessions.Post("/:id/back", cfg.Wizard.Back)
	sessions.Post("/:id/submit", cfg.Wizard.Submit)
	sessions.Get("/:id/slots", cfg.Wizard.ListSlots)

	edits := app.Group("/booking/edits")
	edits.Get("/:id", cfg.Edit.GetSession)
	edits.Delete("/:id", cfg.Edit.Abandon)
	edits.Put("/:id/schedule", cfg.Edit.SetSchedule)
	edits.Put("/:id/details", cfg.Edit.SetDetails)
	edits.Get("/:id/slots", cfg.Edit.ListSlots)
	edits.Post("/:id/submit", cfg.Edit.Submit)

	app.Post("/auth/admin/login", cfg.Admin.Login)

	admin := app.Group("/admin", cfg.AdminMiddleware.Handle)
	admin.Get("/schedule", cfg.Admin.DaySchedule)
	admin.Delete("/appointments/:id", cfg.Admin.CancelAppointment)
}
