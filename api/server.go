/*
server.go - HTTP router and middleware configuration

ROUTER: chi
  Lightweight, context-based, with the middleware this service needs:
  request logging, panic recovery, request IDs, CORS for the front-end.

SECURITY NOTE:
  The only gate is the X-User-ID actor header on mutating routes. This is
  a single-tenant, single-session back office on a trusted host; transport
  hardening is out of scope by design.
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
		})

		r.Get("/dashboard", h.Dashboard)

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Get("/open", h.ListOpenShifts)
			r.Post("/", h.OpenShift)
			r.Post("/{id}/close", h.CloseShift)
		})

		r.Route("/fuels", func(r chi.Router) {
			r.Get("/", h.ListFuels)
			r.Get("/low-stock", h.LowStock)
			r.Post("/", h.SaveFuel)
			r.Put("/{id}", h.SaveFuel)
			r.Delete("/{id}", h.DeleteFuel)
		})

		r.Route("/pumps", func(r chi.Router) {
			r.Get("/", h.ListPumps)
			r.Post("/", h.SavePump)
			r.Put("/{id}", h.SavePump)
			r.Delete("/{id}", h.DeletePump)
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", h.ListSuppliers)
			r.Post("/", h.SaveSupplier)
			r.Put("/{id}", h.SaveSupplier)
			r.Delete("/{id}", h.DeleteSupplier)
			r.Post("/{id}/supplies", h.ReceiveSupply)
		})
		r.Get("/supplies", h.ListSupplies)

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.ListExpenses)
			r.Post("/", h.SaveExpense)
			r.Put("/{id}", h.SaveExpense)
			r.Delete("/{id}", h.DeleteExpense)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.SaveUser)
			r.Put("/{id}", h.SaveUser)
			r.Delete("/{id}", h.DeleteUser)
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.ListStaff)
			r.Post("/", h.SaveStaff)
			r.Put("/{id}", h.SaveStaff)
			r.Delete("/{id}", h.DeleteStaff)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", h.ListDocuments)
			r.Get("/expiring", h.ExpiringDocuments)
			r.Post("/", h.SaveDocument)
			r.Put("/{id}", h.SaveDocument)
			r.Delete("/{id}", h.DeleteDocument)
		})
		r.Get("/document-types", h.ListDocumentTypes)
		r.Put("/document-types", h.SaveDocumentTypes)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/monthly", h.MonthlyReport)
			r.Get("/summary", h.ReportSummary)
		})

		r.Get("/audit", h.AuditLog)

		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.SaveSettings)

		r.Get("/backups", h.ListBackups)
		r.Post("/backups", h.RecordBackup)

		r.Route("/export", func(r chi.Router) {
			r.Get("/statement.xlsx", h.ExportStatementXLSX)
			r.Get("/statement.pdf", h.ExportStatementPDF)
			r.Get("/{collection}.csv", h.ExportCSV)
		})
	})

	return r
}
