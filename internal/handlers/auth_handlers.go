package handlers

import (
	"net/http"

	"hospital_backend/internal/middleware"
	"hospital_backend/internal/services"
	"hospital_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

func currentUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
	}
	return id, ok
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req, "Login") {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register handles POST /auth/register (admin only).
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterUserRequest
	if !bindJSON(c, &req, "Register") {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "register user")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ChangePassword handles POST /auth/change-password for the calling account.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.ChangePasswordRequest
	if !bindJSON(c, &req, "ChangePassword") {
		return
	}

	user, err := h.authService.ChangePassword(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "change password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully", "user": user})
}

// ResetPassword handles POST /auth/reset-password. The target account goes back to the
// universal password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.ResetPasswordRequest
	if !bindJSON(c, &req, "ResetPassword") {
		return
	}

	password, err := h.authService.ResetToUniversal(c.Request.Context(), req.Email, userID)
	if err != nil {
		respondServiceError(c, err, "reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset to universal password", "universal_password": password})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.authService.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "fetch user profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout is stateless; the client discards its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful. Please discard your token."})
}
