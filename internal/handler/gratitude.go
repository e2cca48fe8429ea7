package handler

import (
	"net/http"
	"time"

	"github.com/bienestar-app/bienestar/internal/ctxkeys"
	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/render"
	"github.com/bienestar-app/bienestar/internal/service"
)

type GratitudeHandler struct {
	gratitudeService *service.GratitudeService
	loc              *time.Location
}

func NewGratitudeHandler(gratitudeService *service.GratitudeService, loc *time.Location) *GratitudeHandler {
	return &GratitudeHandler{
		gratitudeService: gratitudeService,
		loc:              loc,
	}
}

func (h *GratitudeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input struct {
		Text string `json:"text"`
		Date string `json:"date"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	date, err := parseDay("date", input.Date, h.loc)
	if err != nil {
		writeServiceError(w, err, "parse date")
		return
	}

	result, err := h.gratitudeService.Create(user.ID, input.Text, date)
	if err != nil {
		writeServiceError(w, err, "save gratitude entry", "user_id", user.ID)
		return
	}

	if result.NewBadges == nil {
		result.NewBadges = []model.BadgeDefinition{}
	}
	render.JSON(w, http.StatusCreated, result)
}

func (h *GratitudeHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	since, err := parseDay("since", r.URL.Query().Get("since"), h.loc)
	if err != nil {
		writeServiceError(w, err, "parse since")
		return
	}

	entries, err := h.gratitudeService.Entries(user.ID, since)
	if err != nil {
		writeServiceError(w, err, "load gratitude entries", "user_id", user.ID)
		return
	}

	if entries == nil {
		entries = []*model.GratitudeEntry{}
	}
	render.JSON(w, http.StatusOK, map[string]any{"entries": entries})
}
