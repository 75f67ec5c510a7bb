package handlers

import (
	"errors"
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/availability"
	"medibook/services/doctor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// doctorError maps service errors to HTTP statuses shared by the doctor
// portal endpoints.
func doctorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, doctor.ErrAppointmentNotFound),
		errors.Is(err, doctor.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, doctor.ErrNotConnected):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, doctor.ErrWeekdayOccupied):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, doctor.ErrBadTimeRange),
		errors.Is(err, doctor.ErrBadDateRange),
		errors.Is(err, availability.ErrBadClock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("Doctor portal request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func ListWorkingHoursHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hours, err := svc.ListWorkingHours(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, hours)
	}
}

func AddWorkingHoursHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			DayOfWeek *int   `json:"dayOfWeek" binding:"required"`
			StartTime string `json:"startTime" binding:"required"`
			EndTime   string `json:"endTime" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		entry, err := svc.AddWorkingHours(c.Request.Context(), middleware.UserID(c), *req.DayOfWeek, req.StartTime, req.EndTime)
		if err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func DeleteWorkingHoursHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteWorkingHours(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}

func ListVacationsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		vacations, err := svc.ListVacations(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, vacations)
	}
}

func AddVacationHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			StartDate string `json:"startDate" binding:"required"`
			EndDate   string `json:"endDate" binding:"required"`
			Reason    string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		v, err := svc.AddVacation(c.Request.Context(), middleware.UserID(c), req.StartDate, req.EndDate, req.Reason)
		if err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusCreated, v)
	}
}

func DeleteVacationHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteVacation(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}

// DoctorAppointmentsHandler lists appointments for ?date=YYYY-MM-DD, or the
// upcoming ones when no date is given.
func DoctorAppointmentsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			apts []models.AppointmentView
			err  error
		)
		if date := c.Query("date"); date != "" {
			apts, err = svc.AppointmentsByDate(c.Request.Context(), middleware.UserID(c), date)
		} else {
			apts, err = svc.UpcomingAppointments(c.Request.Context(), middleware.UserID(c))
		}
		if err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, apts)
	}
}

func DoctorCancelAppointmentHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CancelAppointment(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled"})
	}
}

func CompleteAppointmentHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CompleteAppointment(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "appointment completed"})
	}
}

func SetAppointmentNotesHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Notes string `json:"notes" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if err := svc.SetAppointmentNotes(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Notes); err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "notes saved"})
	}
}

func PendingRequestsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqs, err := svc.PendingRequests(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, reqs)
	}
}

func RespondToRequestHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Accept *bool `json:"accept" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if err := svc.RespondToRequest(c.Request.Context(), middleware.UserID(c), c.Param("id"), *req.Accept); err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "request updated"})
	}
}

func ListPatientsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		patients, err := svc.ListPatients(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, patients)
	}
}

func DisconnectPatientHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DisconnectPatient(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "patient disconnected"})
	}
}

func CreateRecordHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rec models.MedicalRecord
		if err := c.ShouldBindJSON(&rec); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		rec.PatientID = c.Param("id")
		created, err := svc.CreateRecord(c.Request.Context(), middleware.UserID(c), rec)
		if err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func PatientRecordsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := svc.PatientRecords(c.Request.Context(), middleware.UserID(c), c.Param("id"))
		if err != nil {
			doctorError(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}
