package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/nbelhadj/maintenance-management/internal/account"
	"github.com/nbelhadj/maintenance-management/internal/auth"
	"github.com/nbelhadj/maintenance-management/internal/connlog"
	"github.com/nbelhadj/maintenance-management/internal/personnel"
	"github.com/nbelhadj/maintenance-management/internal/report"
	"github.com/nbelhadj/maintenance-management/internal/stats"
	"github.com/nbelhadj/maintenance-management/internal/stock"
	"github.com/nbelhadj/maintenance-management/internal/transport/middleware"
	"github.com/nbelhadj/maintenance-management/internal/transport/swagger"
	"github.com/nbelhadj/maintenance-management/internal/workshop"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	Account   *account.Handler
	Personnel *personnel.Handler
	Workshop  *workshop.Handler
	Report    *report.Handler
	Stock     *stock.Handler
	ConnLog   *connlog.Handler
	Stats     *stats.Handler
}

// RegisterAllRoutes mounts the full API. The session middleware runs
// globally and attaches the identity when the header names a live account;
// per-route policies then decide what an anonymous request may do.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(h.Auth.SessionMiddleware)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Post("/login/", h.Auth.Login)

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Post("/logout/", h.Auth.Logout)
		r.Get("/me/", h.Auth.Me)
		r.Post("/me/change-password/", h.Auth.MeChangePassword)
	})

	router.Get("/stats/", h.Stats.UserStats)
	router.Get("/api/anomalies/", h.Stats.Anomalies)

	// Person and account mutations are admin territory. The rest of the CRUD
	// surface stays open, matching the behavior the front-end was built
	// against.
	router.Route("/techniciens", func(sr chi.Router) {
		sr.Get("/", h.Personnel.ListTechnicians)
		sr.Get("/{id}/", h.Personnel.GetTechnician)
		sr.With(auth.RequireAdmin).Post("/", h.Personnel.CreateTechnician)
		sr.With(auth.RequireAdmin).Put("/{id}/", h.Personnel.UpdateTechnician)
		sr.With(auth.RequireAdmin).Delete("/{id}/", h.Personnel.DeleteTechnician)
	})

	router.Route("/admins", func(sr chi.Router) {
		sr.Get("/", h.Personnel.ListAdmins)
		sr.Get("/{id}/", h.Personnel.GetAdmin)
		sr.With(auth.RequireAdmin).Post("/", h.Personnel.CreateAdmin)
		sr.With(auth.RequireAdmin).Put("/{id}/", h.Personnel.UpdateAdmin)
		sr.With(auth.RequireAdmin).Delete("/{id}/", h.Personnel.DeleteAdmin)
	})

	router.Route("/connexusers", func(sr chi.Router) {
		sr.Get("/", h.Account.List)
		sr.Get("/{id}/", h.Account.Get)
		sr.With(auth.RequireAdmin).Post("/", h.Account.Create)
		sr.With(auth.RequireAdmin).Put("/{id}/", h.Account.Update)
		sr.With(auth.RequireAdmin).Delete("/{id}/", h.Account.Delete)
		sr.With(auth.RequireAdmin).Post("/{id}/change-password/", h.Account.ChangePassword)
		sr.With(auth.RequireAdmin).Post("/{id}/reset-password/", h.Account.ResetPassword)
	})

	router.Route("/ateliers", func(sr chi.Router) {
		sr.Get("/", h.Workshop.ListWorkshops)
		sr.Post("/", h.Workshop.CreateWorkshop)
		sr.Get("/{id}/", h.Workshop.GetWorkshop)
		sr.Put("/{id}/", h.Workshop.UpdateWorkshop)
		sr.Delete("/{id}/", h.Workshop.DeleteWorkshop)
	})

	router.Route("/equipements", func(sr chi.Router) {
		sr.Get("/", h.Workshop.ListEquipment)
		sr.Post("/", h.Workshop.CreateEquipment)
		sr.Get("/{id}/", h.Workshop.GetEquipment)
		sr.Put("/{id}/", h.Workshop.UpdateEquipment)
		sr.Delete("/{id}/", h.Workshop.DeleteEquipment)
	})

	router.Route("/formulaires", func(sr chi.Router) {
		sr.Get("/", h.Report.List)
		sr.Post("/", h.Report.Create)
		sr.Get("/{id}/", h.Report.Get)
		sr.Put("/{id}/", h.Report.Update)
		sr.Delete("/{id}/", h.Report.Delete)
	})

	router.Route("/stocks", func(sr chi.Router) {
		sr.Get("/", h.Stock.List)
		sr.Post("/", h.Stock.Create)
		sr.Get("/{id}/", h.Stock.Get)
		sr.Put("/{id}/", h.Stock.Update)
		sr.Delete("/{id}/", h.Stock.Delete)
	})

	router.Route("/connexionlogs", func(sr chi.Router) {
		sr.Get("/", h.ConnLog.List)
		sr.Get("/{id}/", h.ConnLog.Get)
		sr.Post("/{id}/disconnect/", h.ConnLog.Disconnect)
		sr.Delete("/{id}/", h.ConnLog.Delete)
	})
}
