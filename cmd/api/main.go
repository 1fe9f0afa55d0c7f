package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/ez-programmer4/darulkubra-sub003/internal/config"
	appHTTP "github.com/ez-programmer4/darulkubra-sub003/internal/handler/http"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/cache"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/database"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/jwt"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/metrics"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/migrate"
	"github.com/ez-programmer4/darulkubra-sub003/internal/repository/postgresql"
	salaryService "github.com/ez-programmer4/darulkubra-sub003/internal/service/salary"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	migrator, err := migrate.NewMigrator(db.Pool, cfg.App.MigrationsPath)
	if err != nil {
		log.Fatal("Failed to initialize migrator:", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations:", err)
	}
	if err := migrator.Close(); err != nil {
		log.Fatal("Failed to close migrator:", err)
	}

	teacherRepo := postgresql.NewTeacherRepository(db)
	studentRepo := postgresql.NewStudentRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	rateRepo := postgresql.NewRateRepository(db)
	deductionRepo := postgresql.NewDeductionRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.New(registry)

	resultCache := cache.NewMemory(cfg.Payroll.CacheTTL)

	salarySvc := salaryService.NewSalaryService(
		teacherRepo,
		studentRepo,
		activityRepo,
		rateRepo,
		deductionRepo,
		resultCache,
		engineMetrics,
		cfg.Payroll.BatchConcurrency,
	)

	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	payrollHandler := appHTTP.NewPayrollHandler(rateRepo, deductionRepo, resultCache)

	router := appHTTP.NewRouter(jwtService, salaryHandler, payrollHandler, registry)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
