package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bienestar-app/bienestar/internal/ctxkeys"
	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/render"
	"github.com/bienestar-app/bienestar/internal/service"
)

type AuthHandler struct {
	authService    *service.AuthService
	userService    *service.UserService
	profileService *service.ProfileService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService, profileService *service.ProfileService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		userService:    userService,
		profileService: profileService,
	}
}

type sessionResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *model.User    `json:"user"`
	Profile   *model.Profile `json:"profile"`
}

type meResponse struct {
	User    *model.User    `json:"user"`
	Profile *model.Profile `json:"profile"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if !decodeJSON(w, r, &input) {
		return
	}

	user, profile, err := h.authService.Register(input)
	if errors.Is(err, service.ErrRegistrationClosed) {
		render.Error(w, http.StatusForbidden, err.Error())
		return
	}
	if errors.Is(err, service.ErrEmailAlreadyExists) {
		render.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, err, "register")
		return
	}

	h.writeSession(w, http.StatusCreated, user, profile)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	user, err := h.authService.Login(input.Email, input.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		render.Error(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		return
	}
	if err != nil {
		writeServiceError(w, err, "log in")
		return
	}

	profile, err := h.profileService.ByUserID(user.ID)
	if err != nil {
		writeServiceError(w, err, "load profile", "user_id", user.ID)
		return
	}

	h.writeSession(w, http.StatusOK, user, profile)
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, status int, user *model.User, profile *model.Profile) {
	token, expiresAt, err := h.authService.GenerateJWT(user, profile)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		render.Error(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	render.JSON(w, status, sessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		Profile:   profile,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, meResponse{
		User:    ctxkeys.User(r.Context()),
		Profile: ctxkeys.Profile(r.Context()),
	})
}

func (h *AuthHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	profile, err := h.profileService.UpdateName(user.ID, input.Name)
	if err != nil {
		writeServiceError(w, err, "update name", "user_id", user.ID)
		return
	}

	render.JSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	err := h.userService.UpdatePassword(user.ID, input.CurrentPassword, input.NewPassword)
	if errors.Is(err, service.ErrInvalidCurrentPassword) {
		render.FieldError(w, "current_password", err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, err, "update password", "user_id", user.ID)
		return
	}

	render.NoContent(w)
}
