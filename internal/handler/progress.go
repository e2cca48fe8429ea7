package handler

import (
	"net/http"

	"github.com/bienestar-app/bienestar/internal/ctxkeys"
	"github.com/bienestar-app/bienestar/internal/render"
	"github.com/bienestar-app/bienestar/internal/service"
)

type ProgressHandler struct {
	progressService *service.ProgressService
	badgeService    *service.BadgeService
}

func NewProgressHandler(progressService *service.ProgressService, badgeService *service.BadgeService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		badgeService:    badgeService,
	}
}

func (h *ProgressHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	view, err := h.progressService.Progress(user.ID)
	if err != nil {
		writeServiceError(w, err, "load progress", "user_id", user.ID)
		return
	}

	render.JSON(w, http.StatusOK, view)
}

func (h *ProgressHandler) Badges(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	view, err := h.progressService.Progress(user.ID)
	if err != nil {
		writeServiceError(w, err, "load progress", "user_id", user.ID)
		return
	}

	badges, err := h.badgeService.Badges(user.ID, view.UserProgress)
	if err != nil {
		writeServiceError(w, err, "load badges", "user_id", user.ID)
		return
	}

	render.JSON(w, http.StatusOK, map[string]any{"badges": badges})
}

func (h *ProgressHandler) MarkNotified(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input struct {
		BadgeIDs []string `json:"badge_ids"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	n, err := h.badgeService.MarkNotified(user.ID, input.BadgeIDs)
	if err != nil {
		writeServiceError(w, err, "mark badges notified", "user_id", user.ID)
		return
	}

	render.JSON(w, http.StatusOK, map[string]int64{"updated": n})
}
