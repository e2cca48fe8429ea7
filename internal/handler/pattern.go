package handler

import (
	"net/http"

	"github.com/bienestar-app/bienestar/internal/ctxkeys"
	"github.com/bienestar-app/bienestar/internal/render"
	"github.com/bienestar-app/bienestar/internal/service"
)

type PatternHandler struct {
	patternService *service.PatternService
}

func NewPatternHandler(patternService *service.PatternService) *PatternHandler {
	return &PatternHandler{
		patternService: patternService,
	}
}

func (h *PatternHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	report, err := h.patternService.ForUser(user.ID)
	if err != nil {
		writeServiceError(w, err, "analyze patterns", "user_id", user.ID)
		return
	}

	render.JSON(w, http.StatusOK, report)
}

func (h *PatternHandler) Student(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())
	studentID := r.PathValue("id")

	report, err := h.patternService.ForStudent(profile, studentID)
	if err != nil {
		writeServiceError(w, err, "analyze patterns", "user_id", profile.UserID, "student_id", studentID)
		return
	}

	render.JSON(w, http.StatusOK, report)
}
