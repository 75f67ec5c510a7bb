package routes

import (
	"net/http"
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/models"
	"medibook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with CORS, rate limiting and all route
// groups.
func SetupRouter(hb *handlers.HandlerBundle) *gin.Engine {
	r := gin.New()
	r.Use(utils.ErrorHandler())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	return r
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterAuthRoutes registers the public auth endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Register)
		api.POST("/login", hb.Login)
		api.POST("/forgot-password", hb.ForgotPassword)
		api.POST("/reset-password", hb.ResetPassword)

		api.POST("/signout", middleware.RequireAuth(), hb.SignOut)
	}
}

// RegisterProfileRoutes registers profile endpoints shared by all roles.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.RequireAuth())
		api.GET("", hb.GetProfile)
		api.PATCH("", hb.UpdateProfile)
		api.PUT("/fcm-token", hb.SetFCMToken)
		api.POST("/photo", hb.UploadProfilePhoto)
	}
}

// RegisterDoctorRoutes registers the doctor portal.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctor")
	{
		api.Use(middleware.RequireAuth(models.RoleDoctor))

		api.GET("/working-hours", hb.ListWorkingHours)
		api.POST("/working-hours", hb.AddWorkingHours)
		api.DELETE("/working-hours/:id", hb.DeleteWorkingHours)

		api.GET("/vacations", hb.ListVacations)
		api.POST("/vacations", hb.AddVacation)
		api.DELETE("/vacations/:id", hb.DeleteVacation)

		api.GET("/appointments", hb.DoctorAppointments)
		api.PUT("/appointments/:id/cancel", hb.DoctorCancel)
		api.PUT("/appointments/:id/complete", hb.CompleteAppt)
		api.PUT("/appointments/:id/notes", hb.SetApptNotes)

		api.GET("/requests", hb.PendingRequests)
		api.PUT("/requests/:id", hb.RespondToRequest)
		api.GET("/patients", hb.ListPatients)
		api.DELETE("/patients/:id", hb.DisconnectPatient)
		api.POST("/patients/:id/records", hb.CreateRecord)
		api.GET("/patients/:id/records", hb.PatientRecords)
	}
}

// RegisterPatientRoutes registers the patient portal.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patient")
	{
		api.Use(middleware.RequireAuth(models.RolePatient))

		api.GET("/doctors", hb.SearchDoctors)
		api.GET("/specializations", hb.Specializations)

		api.GET("/connections", hb.ListConnections)
		api.POST("/connections", hb.RequestConnection)
		api.DELETE("/connections/:id", hb.WithdrawRequest)
		api.PUT("/connections/:id/disconnect", hb.DisconnectDoctor)

		api.GET("/doctors/:id/availability", hb.DayAvailability)
		api.POST("/appointments", hb.BookAppointment)
		api.GET("/appointments", hb.PatientAppointments)
		api.PUT("/appointments/:id/cancel", hb.PatientCancel)

		api.GET("/records", hb.MedicalHistory)
	}
}

// RegisterAdminRoutes registers the insurance-admin portal.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.RequireAuth(models.RoleInsurance))
		api.GET("/doctors", hb.AdminDoctors)
		api.PUT("/doctors/:id/approval", hb.SetDoctorApproval)
		api.GET("/stats", hb.PlatformStats)
	}
}

// RegisterNotificationRoutes registers notification endpoints for all roles.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.RequireAuth())
		api.GET("", hb.ListNotifications)
		api.PUT("/:id/read", hb.MarkRead)
		api.PUT("/read-all", hb.MarkAllRead)
	}
}
