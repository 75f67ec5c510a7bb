package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	appointmentRepoPkg "medibook/database/repository/appointment"
	connectionRepoPkg "medibook/database/repository/connection"
	doctorRepoPkg "medibook/database/repository/doctor"
	notificationRepoPkg "medibook/database/repository/notification"
	patientRepoPkg "medibook/database/repository/patient"
	recordRepoPkg "medibook/database/repository/record"
	scheduleRepoPkg "medibook/database/repository/schedule"
	userRepoPkg "medibook/database/repository/user"
	"medibook/handlers"
	"medibook/routes"
	"medibook/services/admin"
	"medibook/services/auth"
	"medibook/services/doctor"
	"medibook/services/notification"
	"medibook/services/patient"
	"medibook/services/storage"
	"medibook/services/user"
	"medibook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	connectionRepo := connectionRepoPkg.NewMongoConnectionRepo()
	recordRepo := recordRepoPkg.NewMongoRecordRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// Media storage is optional; the profile photo endpoint reports it
	// unconfigured when credentials are absent.
	var storageSvc storage.StorageService
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Sugar().Warnf("main: cloudinary disabled: %v", err)
	} else {
		storageSvc = storage.NewCloudinaryStorage(cld)
	}

	// Services.
	notificationSvc := notification.NewDefaultNotificationService(
		notificationRepo,
		userRepo,
		cron.NewReminderQueueClient(),
	)

	throttle := auth.NewRedisThrottle(
		utils.GetThrottleCacheClient(),
		time.Duration(config.AppConfig.LockoutWindowSeconds)*time.Second,
		config.AppConfig.MaxLoginAttempts,
	)
	authSvc := &auth.DefaultAuthService{
		Users:    userRepo,
		Doctors:  doctorRepo,
		Patients: patientRepo,
		Throttle: throttle,
	}

	userSvc := &user.DefaultUserService{
		Users:    userRepo,
		Doctors:  doctorRepo,
		Patients: patientRepo,
		Storage:  storageSvc,
	}

	doctorSvc := &doctor.DefaultDoctorService{
		Doctors:      doctorRepo,
		Users:        userRepo,
		Patients:     patientRepo,
		Schedules:    scheduleRepo,
		Appointments: appointmentRepo,
		Connections:  connectionRepo,
		Records:      recordRepo,
		Notifier:     notificationSvc,
	}

	patientSvc := &patient.DefaultPatientService{
		Patients:     patientRepo,
		Doctors:      doctorRepo,
		Users:        userRepo,
		Schedules:    scheduleRepo,
		Appointments: appointmentRepo,
		Connections:  connectionRepo,
		Records:      recordRepo,
		Notifier:     notificationSvc,
		SlotMinutes:  config.AppConfig.SlotMinutes,
	}

	adminSvc := &admin.DefaultAdminService{
		Doctors:      doctorRepo,
		Users:        userRepo,
		Appointments: appointmentRepo,
		Notifier:     notificationSvc,
	}

	// Background reminder worker.
	cron.InitReminderWorker(notificationSvc)

	hb := handlers.NewHandlerBundle(authSvc, userSvc, doctorSvc, patientSvc, adminSvc, notificationSvc)
	router := routes.SetupRouter(hb)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
