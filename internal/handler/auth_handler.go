package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-booking/internal/auth"
	"clinic-booking/internal/middleware"
	"clinic-booking/internal/model"
	"clinic-booking/internal/store"
)

// Index sends a logged-in user to their role dashboard; anyone else
// gets the landing payload.
func (h *Handler) Index(c *gin.Context) {
	if id := middleware.IdentityFrom(c); id != nil {
		c.Redirect(http.StatusSeeOther, dashboardPath(id.Role))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"service":  "clinic-booking",
		"login":    "/login",
		"register": "/register",
	})
}

func (h *Handler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	role := model.Role(c.PostForm("role"))
	if role == "" {
		role = model.RolePatient
	}

	// all validation happens before the store is touched
	if username == "" || email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}
	if len(password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters long"})
		return
	}
	if role != model.RolePatient && role != model.RoleDoctor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role selected"})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed, please try again"})
		return
	}

	if _, err := h.store.CreateUser(username, email, hash, role); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		case errors.Is(err, store.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed, please try again"})
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	u, ok := h.store.GetUserByUsername(username)
	if !ok || !auth.CheckPassword(u.PasswordHash, password) {
		// same message for unknown user and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	tok, err := auth.MakeSessionToken(auth.Identity{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}, h.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed, please try again"})
		return
	}

	c.SetCookie(middleware.SessionCookie, tok, int(auth.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, dashboardPath(u.Role))
}

// Logout revokes the presented session token and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if raw, err := c.Cookie(middleware.SessionCookie); err == nil && raw != "" {
		if claims, err := auth.ParseSessionToken(raw, h.secret); err == nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := h.revoker.Revoke(claims.ID, ttl); err != nil {
				slog.Error("session revoke failed", "err", err)
			}
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
