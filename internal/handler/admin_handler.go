package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic-booking/internal/model"
)

func (h *Handler) AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"users":        h.store.ListAllUsers(),
		"appointments": h.store.ListAllAppointments(),
	})
}

// AdminUpdateAppointment accepts the full status set, including moving
// an appointment back to pending or cancelling it.
func (h *Handler) AdminUpdateAppointment(c *gin.Context) {
	apptID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	status := model.Status(c.PostForm("status"))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if !h.store.UpdateAppointmentStatus(apptID, status) {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}
