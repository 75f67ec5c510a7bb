package handlers

import (
	"medibook/services/admin"
	"medibook/services/auth"
	"medibook/services/doctor"
	"medibook/services/notification"
	"medibook/services/patient"
	"medibook/services/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct the router
// consumes.
type HandlerBundle struct {
	// Auth endpoints
	Register       gin.HandlerFunc
	Login          gin.HandlerFunc
	SignOut        gin.HandlerFunc
	ForgotPassword gin.HandlerFunc
	ResetPassword  gin.HandlerFunc

	// Profile endpoints
	GetProfile         gin.HandlerFunc
	UpdateProfile      gin.HandlerFunc
	SetFCMToken        gin.HandlerFunc
	UploadProfilePhoto gin.HandlerFunc

	// Doctor portal
	ListWorkingHours   gin.HandlerFunc
	AddWorkingHours    gin.HandlerFunc
	DeleteWorkingHours gin.HandlerFunc
	ListVacations      gin.HandlerFunc
	AddVacation        gin.HandlerFunc
	DeleteVacation     gin.HandlerFunc
	DoctorAppointments gin.HandlerFunc
	DoctorCancel       gin.HandlerFunc
	CompleteAppt       gin.HandlerFunc
	SetApptNotes       gin.HandlerFunc
	PendingRequests    gin.HandlerFunc
	RespondToRequest   gin.HandlerFunc
	ListPatients       gin.HandlerFunc
	DisconnectPatient  gin.HandlerFunc
	CreateRecord       gin.HandlerFunc
	PatientRecords     gin.HandlerFunc

	// Patient portal
	SearchDoctors       gin.HandlerFunc
	Specializations     gin.HandlerFunc
	ListConnections     gin.HandlerFunc
	RequestConnection   gin.HandlerFunc
	WithdrawRequest     gin.HandlerFunc
	DisconnectDoctor    gin.HandlerFunc
	DayAvailability     gin.HandlerFunc
	BookAppointment     gin.HandlerFunc
	PatientAppointments gin.HandlerFunc
	PatientCancel       gin.HandlerFunc
	MedicalHistory      gin.HandlerFunc

	// Insurance admin
	AdminDoctors      gin.HandlerFunc
	SetDoctorApproval gin.HandlerFunc
	PlatformStats     gin.HandlerFunc

	// Notifications
	ListNotifications gin.HandlerFunc
	MarkRead          gin.HandlerFunc
	MarkAllRead       gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its service.
func NewHandlerBundle(
	authSvc auth.AuthService,
	userSvc user.UserService,
	doctorSvc doctor.DoctorService,
	patientSvc patient.PatientService,
	adminSvc admin.AdminService,
	notifSvc notification.NotificationService,
) *HandlerBundle {
	return &HandlerBundle{
		Register:       RegisterHandler(authSvc),
		Login:          LoginHandler(authSvc),
		SignOut:        SignOutHandler(authSvc),
		ForgotPassword: ForgotPasswordHandler(authSvc),
		ResetPassword:  ResetPasswordHandler(authSvc),

		GetProfile:         GetProfileHandler(userSvc),
		UpdateProfile:      UpdateProfileHandler(userSvc),
		SetFCMToken:        SetFCMTokenHandler(userSvc),
		UploadProfilePhoto: UploadProfilePhotoHandler(userSvc),

		ListWorkingHours:   ListWorkingHoursHandler(doctorSvc),
		AddWorkingHours:    AddWorkingHoursHandler(doctorSvc),
		DeleteWorkingHours: DeleteWorkingHoursHandler(doctorSvc),
		ListVacations:      ListVacationsHandler(doctorSvc),
		AddVacation:        AddVacationHandler(doctorSvc),
		DeleteVacation:     DeleteVacationHandler(doctorSvc),
		DoctorAppointments: DoctorAppointmentsHandler(doctorSvc),
		DoctorCancel:       DoctorCancelAppointmentHandler(doctorSvc),
		CompleteAppt:       CompleteAppointmentHandler(doctorSvc),
		SetApptNotes:       SetAppointmentNotesHandler(doctorSvc),
		PendingRequests:    PendingRequestsHandler(doctorSvc),
		RespondToRequest:   RespondToRequestHandler(doctorSvc),
		ListPatients:       ListPatientsHandler(doctorSvc),
		DisconnectPatient:  DisconnectPatientHandler(doctorSvc),
		CreateRecord:       CreateRecordHandler(doctorSvc),
		PatientRecords:     PatientRecordsHandler(doctorSvc),

		SearchDoctors:       SearchDoctorsHandler(patientSvc),
		Specializations:     SpecializationsHandler(),
		ListConnections:     ListConnectionsHandler(patientSvc),
		RequestConnection:   RequestConnectionHandler(patientSvc),
		WithdrawRequest:     WithdrawRequestHandler(patientSvc),
		DisconnectDoctor:    DisconnectDoctorHandler(patientSvc),
		DayAvailability:     DayAvailabilityHandler(patientSvc),
		BookAppointment:     BookAppointmentHandler(patientSvc),
		PatientAppointments: PatientAppointmentsHandler(patientSvc),
		PatientCancel:       PatientCancelAppointmentHandler(patientSvc),
		MedicalHistory:      MedicalHistoryHandler(patientSvc),

		AdminDoctors:      AdminDoctorsHandler(adminSvc),
		SetDoctorApproval: SetDoctorApprovalHandler(adminSvc),
		PlatformStats:     PlatformStatsHandler(adminSvc),

		ListNotifications: ListNotificationsHandler(notifSvc),
		MarkRead:          MarkNotificationReadHandler(notifSvc),
		MarkAllRead:       MarkAllNotificationsReadHandler(notifSvc),
	}
}
