package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clinic-booking/internal/middleware"
	"clinic-booking/internal/model"
	"clinic-booking/internal/session"
	"clinic-booking/internal/store"
)

type Handler struct {
	store   *store.Store
	revoker session.Revoker
	secret  string
}

func New(st *store.Store, revoker session.Revoker, secret string) *Handler {
	return &Handler{store: st, revoker: revoker, secret: secret}
}

// Router builds the gin engine with all routes and middleware attached.
func (h *Handler) Router() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.Identify(h.secret, h.revoker))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "clinic-booking"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", h.Index)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	patient := r.Group("/patient", middleware.RequireAuth(), middleware.RequireRole(model.RolePatient))
	{
		patient.GET("/dashboard", h.PatientDashboard)
		patient.GET("/doctors", h.ListDoctors)
		patient.POST("/book-appointment", h.BookAppointment)
	}

	doctor := r.Group("/doctor", middleware.RequireAuth(), middleware.RequireRole(model.RoleDoctor))
	{
		doctor.GET("/dashboard", h.DoctorDashboard)
		doctor.POST("/appointment/:id/update", h.DoctorUpdateAppointment)
	}

	admin := r.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/dashboard", h.AdminDashboard)
		admin.POST("/appointment/:id/update", h.AdminUpdateAppointment)
	}

	return r
}

func dashboardPath(role model.Role) string {
	switch role {
	case model.RoleDoctor:
		return "/doctor/dashboard"
	case model.RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/patient/dashboard"
	}
}
