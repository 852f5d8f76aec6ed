package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/titangym/backend/internal/api"
	"github.com/titangym/backend/internal/config"
	"github.com/titangym/backend/internal/insight"
	"github.com/titangym/backend/internal/repository/mongo"
	"github.com/titangym/backend/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("Starting TitanGym server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("FATAL: jwt.secret is not configured")
	}
	log.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("employees"))
		mongo.EnsureCustomerIndexes(ctx, appDB.Collection("customers"))
		mongo.EnsureAttendanceIndexes(ctx, appDB.Collection("attendance"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureRoutineIndexes(ctx, appDB.Collection("routines"))
		mongo.EnsureWorkoutLogIndexes(ctx, appDB.Collection("workout_logs"))
		log.Info("Index creation process completed.")
	}()

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	customerRepo := mongo.NewMongoCustomerRepository(appDB)
	attendanceRepo := mongo.NewMongoAttendanceRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	workoutLogRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	suggestionRepo := mongo.NewMongoSuggestionRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, customerRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(userRepo, customerRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo)
	exerciseService := service.NewExerciseService(exerciseRepo)
	routineService := service.NewRoutineService(routineRepo, userRepo, customerRepo)
	workoutService := service.NewWorkoutService(workoutLogRepo, routineRepo, userRepo, customerRepo)
	generator := insight.NewGenerator(cfg.Insight)
	dashboardService := service.NewDashboardService(customerRepo, attendanceRepo, routineRepo, suggestionRepo, generator)

	// --- Seed Data ---
	// A fresh database gets a bootstrap admin, the starter exercise
	// catalog, and a few sample suggestions. All three are idempotent.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSeed()
	if err := service.SeedAdmin(seedCtx, userRepo); err != nil {
		log.Fatalf("FATAL: Could not seed admin account: %v", err)
	}
	if err := exerciseService.SeedDefaults(seedCtx); err != nil {
		log.Errorf("Could not seed exercise catalog: %v", err)
	}
	if err := service.SeedSuggestions(seedCtx, suggestionRepo); err != nil {
		log.Errorf("Could not seed suggestions: %v", err)
	}

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(
		router,
		authService,
		profileService,
		attendanceService,
		exerciseService,
		routineService,
		workoutService,
		dashboardService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not start server: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}
	log.Info("Server exited.")
}
