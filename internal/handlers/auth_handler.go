package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"airmailer/internal/models"
	"airmailer/internal/services"
	"airmailer/internal/validators"
)

type AuthHandler struct {
	accounts     services.AccountService
	verification services.VerificationService
	resets       services.ResetService
}

func NewAuthHandler(accounts services.AccountService, verification services.VerificationService, resets services.ResetService) *AuthHandler {
	return &AuthHandler{accounts: accounts, verification: verification, resets: resets}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and password required")
		return
	}
	if err := validators.EmailValidator(req.Email); err != nil {
		fail(c, http.StatusBadRequest, "Invalid email format or too long")
		return
	}
	if err := validators.PasswordValidator(req.Password); err != nil {
		fail(c, http.StatusBadRequest, validators.ErrPasswordWeak.Error())
		return
	}

	result, err := h.accounts.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			fail(c, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("[auth][signup] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	ok(c, http.StatusCreated, "Account created successfully! Please check your email to verify your account.", gin.H{
		"token":         result.Token,
		"apiKey":        result.APIKey,
		"emailVerified": false,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and password required")
		return
	}
	if err := validators.EmailValidator(req.Email); err != nil {
		fail(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("[auth][login] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	ok(c, http.StatusOK, "Login successful!", gin.H{
		"token":         result.Token,
		"emailVerified": result.EmailVerified,
	})
}

// Refresh reads the (possibly expired) token straight from the Authorization
// header; the service decides whether it is still inside the grace window.
func (h *AuthHandler) Refresh(c *gin.Context) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		fail(c, http.StatusUnauthorized, "Authorization token required")
		return
	}

	token, err := h.accounts.Refresh(c.Request.Context(), strings.TrimSpace(parts[1]))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			fail(c, http.StatusUnauthorized, "Token expired too long ago")
		case errors.Is(err, services.ErrTokenInvalid):
			fail(c, http.StatusUnauthorized, "Invalid token")
		case errors.Is(err, services.ErrAccountNotFound):
			fail(c, http.StatusUnauthorized, "User not found")
		default:
			log.Printf("[auth][refresh] failed: %v", err)
			fail(c, http.StatusInternalServerError, "Token refresh failed")
		}
		return
	}

	ok(c, http.StatusOK, "Token refreshed successfully", gin.H{"token": token})
}

func (h *AuthHandler) VerifyPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		fail(c, http.StatusBadRequest, "Password required")
		return
	}

	err := h.accounts.VerifyPassword(c.Request.Context(), accountID(c), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			fail(c, http.StatusUnauthorized, "Incorrect password")
		case errors.Is(err, services.ErrAccountNotFound):
			fail(c, http.StatusNotFound, "User not found")
		default:
			log.Printf("[auth][verify-password] failed: %v", err)
			fail(c, http.StatusInternalServerError, "Verification failed")
		}
		return
	}

	ok(c, http.StatusOK, "Password verified", nil)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		fail(c, http.StatusBadRequest, "Verification token required")
		return
	}

	err := h.verification.Confirm(c.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenInvalid):
			fail(c, http.StatusBadRequest, "Invalid verification token")
		case errors.Is(err, services.ErrTokenExpired):
			fail(c, http.StatusBadRequest, "Verification token expired")
		default:
			log.Printf("[auth][verify-email] failed: %v", err)
			fail(c, http.StatusInternalServerError, "Verification failed")
		}
		return
	}

	ok(c, http.StatusOK, "Email verified successfully!", nil)
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	err := h.verification.Resend(c.Request.Context(), accountID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyVerified):
			fail(c, http.StatusBadRequest, "Email already verified")
		case errors.Is(err, services.ErrRateLimited):
			fail(c, http.StatusTooManyRequests, "Too many verification emails sent. Try again later.")
		case errors.Is(err, services.ErrAccountNotFound):
			fail(c, http.StatusNotFound, "User not found")
		default:
			log.Printf("[verify][resend] failed: %v", err)
			fail(c, http.StatusInternalServerError, "Failed to send verification email")
		}
		return
	}

	ok(c, http.StatusOK, "Verification email sent!", nil)
}

func (h *AuthHandler) Status(c *gin.Context) {
	verified, err := h.accounts.Status(c.Request.Context(), accountID(c))
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[auth][status] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to get status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "emailVerified": verified})
}

// ForgotPassword answers the same way whether or not the email exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, http.StatusBadRequest, "Email required")
		return
	}
	if err := validators.EmailValidator(req.Email); err != nil {
		fail(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	if err := h.resets.Request(c.Request.Context(), req.Email); err != nil {
		log.Printf("[reset][request] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to process request")
		return
	}

	ok(c, http.StatusOK, "If an account with that email exists, a password reset link has been sent.", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Token and new password required")
		return
	}
	if err := validators.ResetPasswordValidator(req.Password); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.resets.Consume(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrTokenInvalid) {
			fail(c, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		log.Printf("[reset][consume] failed: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	ok(c, http.StatusOK, "Password reset successfully", nil)
}
