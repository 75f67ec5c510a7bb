package handlers

import (
	"errors"
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/availability"
	"medibook/services/patient"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func patientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, patient.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, patient.ErrAlreadyLinked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, patient.ErrNotConnected):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, patient.ErrDoctorNotFound),
		errors.Is(err, patient.ErrNoPendingLink):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, patient.ErrDayUnavailable),
		errors.Is(err, availability.ErrBadClock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("Patient portal request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// SearchDoctorsHandler lists approved doctors, optionally filtered by
// ?specialization= and ?name=.
func SearchDoctorsHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.DoctorSearchFilter{
			Specialization: c.Query("specialization"),
			Name:           c.Query("name"),
		}
		docs, err := svc.SearchDoctors(c.Request.Context(), filter)
		if err != nil {
			patientError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// SpecializationsHandler returns the fixed specialization list for the
// search and registration dropdowns.
func SpecializationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Specializations)
	}
}

func ListConnectionsHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		conns, err := svc.ListConnections(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			patientError(c, err)
			return
		}
		c.JSON(http.StatusOK, conns)
	}
}

func RequestConnectionHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			DoctorID string `json:"doctorId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		conn, err := svc.RequestConnection(c.Request.Context(), middleware.UserID(c), req.DoctorID)
		if err != nil {
			patientError(c, err)
			return
		}
		c.JSON(http.StatusCreated, conn)
	}
}

// WithdrawRequestHandler deletes the caller's still-pending request toward
// the doctor in the path.
func WithdrawRequestHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.WithdrawRequest(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			patientError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "request withdrawn"})
	}
}

func DisconnectDoctorHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DisconnectDoctor(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			patientError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "doctor disconnected"})
	}
}

// DayAvailabilityHandler answers the calendar: is this date bookable, and
// which slot start times are free.
func DayAvailabilityHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
			return
		}
		day, err := svc.DayAvailability(c.Request.Context(), middleware.UserID(c), c.Param("id"), date)
		if err != nil {
			patientError(c, err)
			return
		}
		c.JSON(http.StatusOK, day)
	}
}

func BookAppointmentHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		apt, err := svc.BookAppointment(c.Request.Context(), middleware.UserID(c), req)
		if err != nil {
			patientError(c, err)
			return
		}
		c.JSON(http.StatusCreated, apt)
	}
}

func PatientAppointmentsHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apts, err := svc.UpcomingAppointments(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			patientError(c, err)
			return
		}
		c.JSON(http.StatusOK, apts)
	}
}

func PatientCancelAppointmentHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CancelAppointment(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			patientError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled"})
	}
}

func MedicalHistoryHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := svc.MedicalHistory(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			patientError(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}
