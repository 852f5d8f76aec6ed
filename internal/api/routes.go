package api

import (
	"net/http"

	"github.com/titangym/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	profileService service.ProfileService,
	attendanceService service.AttendanceService,
	exerciseService service.ExerciseService,
	routineService service.RoutineService,
	workoutService service.WorkoutService,
	dashboardService service.DashboardService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	attendanceHandler := NewAttendanceHandler(attendanceService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	routineHandler := NewRoutineHandler(routineService)
	workoutHandler := NewWorkoutHandler(workoutService)
	dashboardHandler := NewDashboardHandler(dashboardService)

	authMiddleware := AuthMiddleware(authService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/me/password", authHandler.ChangePassword)

		// --- Roster Management (staff only) ---
		employeeGroup := protected.Group("/employees")
		employeeGroup.Use(StaffMiddleware())
		{
			employeeGroup.POST("", profileHandler.CreateEmployee)
			employeeGroup.GET("", profileHandler.ListEmployees)
			employeeGroup.PUT("/:id", profileHandler.UpdateEmployee)
			employeeGroup.DELETE("/:id", profileHandler.DeleteEmployee)
		}

		customerGroup := protected.Group("/customers")
		customerGroup.Use(StaffMiddleware())
		{
			customerGroup.POST("", profileHandler.CreateCustomer)
			customerGroup.GET("", profileHandler.ListCustomers)
			customerGroup.PUT("/:id", profileHandler.UpdateCustomer)
			customerGroup.DELETE("/:id", profileHandler.DeleteCustomer)
		}

		// --- Attendance ---
		attendanceGroup := protected.Group("/attendance")
		{
			attendanceGroup.POST("", attendanceHandler.Record)
			attendanceGroup.GET("", attendanceHandler.ListMine)
			attendanceGroup.GET("/all", StaffMiddleware(), attendanceHandler.ListAll)
		}

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.DELETE("/:id", StaffMiddleware(), exerciseHandler.DeleteExercise)
		}

		// --- Routines ---
		routineGroup := protected.Group("/routines")
		{
			routineGroup.POST("", routineHandler.CreateRoutine)
			routineGroup.GET("", routineHandler.ListRoutines)
			routineGroup.GET("/:id", routineHandler.GetRoutine)
			routineGroup.DELETE("/:id", routineHandler.DeleteRoutine)
			routineGroup.PUT("/:id/activate", routineHandler.Activate)
			routineGroup.PUT("/:id/assign", StaffMiddleware(), routineHandler.AssignToClient)
		}

		// --- Live Workout ---
		workoutGroup := protected.Group("/workout")
		{
			workoutGroup.GET("/session", workoutHandler.Status)
			workoutGroup.POST("/session", workoutHandler.StartSession)
			workoutGroup.PATCH("/session/sets", workoutHandler.UpdateSet)
			workoutGroup.POST("/session/finish", workoutHandler.Finish)
			workoutGroup.GET("/history", workoutHandler.History)
			workoutGroup.GET("/streak", workoutHandler.Streak)
		}

		// --- Dashboard (staff only) ---
		dashboardGroup := protected.Group("/dashboard")
		dashboardGroup.Use(StaffMiddleware())
		{
			dashboardGroup.GET("/stats", dashboardHandler.Stats)
			dashboardGroup.GET("/suggestions", dashboardHandler.Suggestions)
			dashboardGroup.GET("/insight", dashboardHandler.Insight)
		}
	}
}
