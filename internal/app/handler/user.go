package handler

import (
	"errors"
	"net/http"
	"time"

	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/ds"
	"DBsentinel-Gateway/internal/app/middleware"
	"DBsentinel-Gateway/internal/app/repository"
	"DBsentinel-Gateway/internal/app/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxAvatarSize = 5 << 20

type UserHandler struct {
	cfg  *config.Config
	repo *repository.Repository
}

func NewUserHandler(cfg *config.Config, repo *repository.Repository) *UserHandler {
	return &UserHandler{
		cfg:  cfg,
		repo: repo,
	}
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateSettingsRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register godoc
// @Summary Register new user
// @Description Create a new user account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/register [post]
func (h *UserHandler) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	user := &ds.Users{
		Login:    req.Login,
		Password: req.Password,
		Name:     req.Name,
	}

	if err := h.repo.User.RegisterUser(user); err != nil {
		switch {
		case errors.Is(err, repository.ErrLoginTaken):
			ctx.JSON(http.StatusConflict, gin.H{"error": "Login already taken"})
		case errors.Is(err, repository.ErrInvalidPassword), errors.Is(err, repository.ErrInvalidCredentials):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logrus.Error(err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user_id": user.ID,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT tokens
// @Tags Users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} ds.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/login [post]
func (h *UserHandler) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	user, err := h.repo.User.AuthenticateUser(req.Login, req.Password)
	if err != nil {
		if !errors.Is(err, repository.ErrInvalidCredentials) {
			logrus.Error(err)
		}
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokens, err := h.issueTokens(ctx, user)
	if err != nil {
		logrus.Error("Failed to generate tokens: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if rc := h.repo.GetRedisClient(); rc != nil {
		err = rc.SaveUserSession(ctx.Request.Context(), user, ctx.ClientIP(), h.cfg.JWTAccessExpire)
		if err != nil {
			logrus.Error("Failed to save user session: ", err)
		} else {
			logrus.Infof("User session saved for user_id: %d", user.ID)
		}
	}

	tokens.UserID = user.ID
	tokens.Login = user.Login
	ctx.JSON(http.StatusOK, tokens)
}

// RefreshToken godoc
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} ds.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/refresh [post]
func (h *UserHandler) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.cfg.JWTSecret, utils.TokenTypeRefresh)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	// Проверяем, что refresh token есть в Redis
	if rc := h.repo.GetRedisClient(); rc != nil {
		storedToken, err := rc.GetRefreshToken(ctx.Request.Context(), claims.UserID)
		if err != nil || storedToken != req.RefreshToken {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
			return
		}
	}

	user, err := h.repo.User.GetUserByID(claims.UserID)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	tokens, err := h.issueTokens(ctx, user)
	if err != nil {
		logrus.Error("Failed to generate tokens: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	ctx.JSON(http.StatusOK, tokens)
}

// issueTokens выпускает пару токенов и запоминает refresh token
func (h *UserHandler) issueTokens(ctx *gin.Context, user *ds.Users) (*ds.TokenResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user, h.cfg.JWTSecret, h.cfg.JWTAccessExpire)
	if err != nil {
		return nil, err
	}
	refreshToken, err := utils.GenerateRefreshToken(user, h.cfg.JWTSecret, h.cfg.JWTRefreshExpire)
	if err != nil {
		return nil, err
	}

	if rc := h.repo.GetRedisClient(); rc != nil {
		err = rc.SaveRefreshToken(ctx.Request.Context(), user.ID, refreshToken, h.cfg.JWTRefreshExpire)
		if err != nil {
			logrus.Error("Failed to save refresh token: ", err)
		}
	}

	return &ds.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(h.cfg.JWTAccessExpire),
	}, nil
}

// GetProfile godoc
// @Summary Get current user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ds.Users
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/me [get]
func (h *UserHandler) GetProfile(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.repo.User.GetUserByID(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			logrus.Error(err)
		}
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// UpdateSettings godoc
// @Summary Update user settings
// @Description Change display name and username; usernames are unique and 4 to 30 characters long
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Settings"
// @Success 200 {object} ds.Users
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/settings [put]
func (h *UserHandler) UpdateSettings(ctx *gin.Context) {
	var req UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.repo.User.UpdateSettings(userID, ds.SettingsUpdate{
		Name:     req.Name,
		Username: req.Username,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			ctx.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		case errors.Is(err, repository.ErrInvalidUsername):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logrus.Error("Failed to update settings: ", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong updating your settings"})
		}
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// UpdateAvatar godoc
// @Summary Upload avatar
// @Tags Users
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Avatar image (jpg, png, gif, webp)"
// @Success 200 {object} ds.Users
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/avatar [post]
func (h *UserHandler) UpdateAvatar(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Image file required"})
		return
	}
	if fileHeader.Size > maxAvatarSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Image is too large"})
		return
	}

	user, err := h.repo.User.UpdateAvatar(ctx.Request.Context(), userID, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUnsupportedImage):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
		case errors.Is(err, repository.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			logrus.Error("Failed to update avatar: ", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update avatar"})
		}
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary User logout
// @Description Invalidate user token
// @Tags Users
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/logout [post]
func (h *UserHandler) Logout(ctx *gin.Context) {
	tokenString, _ := middleware.BearerToken(ctx)
	userID, _ := middleware.GetUserID(ctx)

	rc := h.repo.GetRedisClient()
	if rc == nil {
		ctx.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
		return
	}

	// В blacklist токен живёт столько, сколько ему осталось
	ttl := h.cfg.JWTAccessExpire
	if claims, ok := middleware.GetClaims(ctx); ok {
		ttl = utils.RemainingTTL(claims)
	}
	if err := rc.AddToBlacklist(ctx.Request.Context(), tokenString, ttl); err != nil {
		logrus.Error("Failed to add token to blacklist: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	if err := rc.DeleteUserSession(ctx.Request.Context(), userID); err != nil {
		logrus.Error("Failed to delete user session: ", err)
	}
	if err := rc.DeleteRefreshToken(ctx.Request.Context(), userID); err != nil {
		logrus.Error("Failed to delete refresh token: ", err)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
