package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobdeck-dev/jobdeck/internal/auth"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
	"github.com/jobdeck-dev/jobdeck/internal/models"
	"github.com/jobdeck-dev/jobdeck/internal/store"
	"github.com/jobdeck-dev/jobdeck/internal/types"
	"github.com/jobdeck-dev/jobdeck/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	sessionMaxAge     = 60 * 60 * 24 * 7
)

type AuthHandler struct {
	users  *store.UserStore
	saved  *store.SavedJobStore
	jwt    *auth.Manager
	domain string
	logger *logger.Logger
}

func NewAuthHandler(users *store.UserStore, saved *store.SavedJobStore, jwt *auth.Manager, domain string, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		saved:  saved,
		jwt:    jwt,
		domain: domain,
		logger: logger,
	}
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PreferencesRequest struct {
	JobRole     string `json:"job_role"`
	Location    string `json:"location"`
	EmailAlerts bool   `json:"email_alerts"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Password = strings.TrimSpace(req.Password)
	req.ConfirmPassword = strings.TrimSpace(req.ConfirmPassword)

	if req.Username == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	if req.Password != req.ConfirmPassword {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	if len(req.Password) < minPasswordLength {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		return
	}

	// Check-then-insert, not transactional: a concurrent registration with
	// the same identity can slip past this lookup and fail on the unique
	// index instead.
	_, err := h.users.FindByIdentity(req.Username, req.Email)

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	if !errors.Is(err, store.ErrNotFound) {
		h.logger.Error("failed to check existing user", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		h.logger.Error("failed to hash password", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
	}

	if err := h.users.Create(&newUser); err != nil {
		h.logger.Error("failed to create user", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := h.jwt.Generate(newUser.ID, newUser.Username)

	if err != nil {
		h.logger.Error("failed to generate session token", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.setSessionCookie(ctx, token, sessionMaxAge)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user": types.UserResponse{
			ID:       newUser.ID,
			Username: newUser.Username,
			Email:    newUser.Email,
		},
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)

	if req.Username == "" || req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, err := h.users.FindByUsername(req.Username)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same message as a wrong password so usernames cannot be probed.
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		h.logger.Error("failed to fetch user", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Username)

	if err != nil {
		h.logger.Error("failed to generate session token", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.setSessionCookie(ctx, token, sessionMaxAge)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Welcome back, " + user.Username + "!",
		"user": types.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	h.setSessionCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:       currentUser.ID,
			Username: currentUser.Username,
			Email:    currentUser.Email,
		},
	})
}

func (h *AuthHandler) Profile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.users.FindByID(currentUser.ID)

	if err != nil {
		h.logger.Error("failed to fetch user", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	savedCount, err := h.saved.Count(user.ID)

	if err != nil {
		h.logger.Error("failed to count saved jobs", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
		"preferences": types.PreferencesResponse{
			PreferredRole:     user.PreferredRole,
			PreferredLocation: user.PreferredLocation,
			EmailAlerts:       user.EmailAlerts,
		},
		"saved_count": savedCount,
	})
}

func (h *AuthHandler) GetPreferences(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.users.FindByID(currentUser.ID)

	if err != nil {
		h.logger.Error("failed to fetch user", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"preferences": types.PreferencesResponse{
			PreferredRole:     user.PreferredRole,
			PreferredLocation: user.PreferredLocation,
			EmailAlerts:       user.EmailAlerts,
		},
	})
}

func (h *AuthHandler) UpdatePreferences(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PreferencesRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role := strings.TrimSpace(req.JobRole)
	location := strings.TrimSpace(req.Location)

	if err := h.users.UpdatePreferences(currentUser.ID, role, location, req.EmailAlerts); err != nil {
		h.logger.Error("failed to update preferences", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Preferences updated successfully"})
}

func (h *AuthHandler) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.domain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
