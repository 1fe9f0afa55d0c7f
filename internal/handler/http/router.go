package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/ez-programmer4/darulkubra-sub003/internal/handler/http/middleware"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(jwtService jwt.Service, salaryHandler SalaryHandler, payrollHandler PayrollHandler, registry *prometheus.Registry) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "darulkubra-salary"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		// Everything requires authentication; tokens come from the main
		// school-management application.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/salaries", func(r chi.Router) {
				r.Get("/", salaryHandler.List)
				r.Route("/{teacherID}", func(r chi.Router) {
					r.Get("/", salaryHandler.GetByTeacher)
					r.Get("/baseline-diff", salaryHandler.BaselineDiff)
				})
			})

			// Configuration and manual record entry, admin only
			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", payrollHandler.GetSettings)
					r.Put("/", payrollHandler.UpdateSettings)
				})

				r.Route("/packages", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPackageRates)
					r.Put("/", payrollHandler.UpsertPackageRate)
					r.Route("/deduction-rates", func(r chi.Router) {
						r.Get("/", payrollHandler.ListDeductionRates)
						r.Put("/", payrollHandler.UpsertDeductionRate)
					})
				})

				r.Route("/lateness-tiers", func(r chi.Router) {
					r.Get("/", payrollHandler.ListLatenessTiers)
					r.Post("/", payrollHandler.CreateLatenessTier)
					r.Delete("/{id}", payrollHandler.DeleteLatenessTier)
				})

				r.Route("/absences", func(r chi.Router) {
					r.Get("/", payrollHandler.ListAbsences)
					r.Post("/", payrollHandler.CreateAbsence)
				})

				r.Route("/lateness-records", func(r chi.Router) {
					r.Get("/", payrollHandler.ListLatenessRecords)
					r.Post("/", payrollHandler.CreateLatenessRecord)
				})

				r.Route("/waivers", func(r chi.Router) {
					r.Get("/", payrollHandler.ListWaivers)
					r.Post("/", payrollHandler.CreateWaiver)
					r.Delete("/{id}", payrollHandler.DeleteWaiver)
				})

				r.Route("/bonuses", func(r chi.Router) {
					r.Get("/", payrollHandler.ListBonuses)
					r.Post("/", payrollHandler.CreateBonus)
				})
			})
		})
	})

	return r
}
