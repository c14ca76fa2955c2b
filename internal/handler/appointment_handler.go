package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-booking/internal/middleware"
	"clinic-booking/internal/model"
	"clinic-booking/internal/store"
)

const dateTimeLayout = "2006-01-02 15:04"

// statuses a doctor may set on an appointment; admin has the full set
var doctorStatuses = map[model.Status]bool{
	model.StatusApproved:  true,
	model.StatusRejected:  true,
	model.StatusCompleted: true,
}

func (h *Handler) PatientDashboard(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"appointments": h.store.ListAppointmentsByPatient(id.UserID),
	})
}

// ListDoctors backs the booking form's doctor picker.
func (h *Handler) ListDoctors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"doctors": h.store.ListDoctors()})
}

func (h *Handler) BookAppointment(c *gin.Context) {
	id := middleware.IdentityFrom(c)

	doctorIDRaw := c.PostForm("doctor_id")
	date := c.PostForm("appointment_date")
	timeOfDay := c.PostForm("appointment_time")
	reason := strings.TrimSpace(c.PostForm("reason"))

	if doctorIDRaw == "" || date == "" || timeOfDay == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}

	doctorID, err := strconv.Atoi(doctorIDRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor"})
		return
	}

	if _, err := time.Parse(dateTimeLayout, date+" "+timeOfDay); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date or time format"})
		return
	}

	if _, err := h.store.CreateAppointment(id.UserID, doctorID, date, timeOfDay, reason); err != nil {
		if errors.Is(err, store.ErrUnknownDoctor) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "doctor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to book appointment"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/patient/dashboard")
}

func (h *Handler) DoctorDashboard(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"appointments": h.store.ListAppointmentsByDoctor(id.UserID),
	})
}

func (h *Handler) DoctorUpdateAppointment(c *gin.Context) {
	apptID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	status := model.Status(c.PostForm("status"))
	if !doctorStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if !h.store.UpdateAppointmentStatus(apptID, status) {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/doctor/dashboard")
}
