package handler

import (
	"net/http"
	"time"

	"github.com/bienestar-app/bienestar/internal/ctxkeys"
	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/render"
	"github.com/bienestar-app/bienestar/internal/service"
)

type MoodHandler struct {
	moodService *service.MoodService
	loc         *time.Location
}

func NewMoodHandler(moodService *service.MoodService, loc *time.Location) *MoodHandler {
	return &MoodHandler{
		moodService: moodService,
		loc:         loc,
	}
}

func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input service.MoodInput
	if !decodeJSON(w, r, &input) {
		return
	}

	record, err := h.moodService.Create(user.ID, input)
	if err != nil {
		writeServiceError(w, err, "save mood record", "user_id", user.ID)
		return
	}

	render.JSON(w, http.StatusCreated, record)
}

func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	since, err := parseDay("since", r.URL.Query().Get("since"), h.loc)
	if err != nil {
		writeServiceError(w, err, "parse since")
		return
	}

	var from time.Time
	if since != nil {
		from = *since
	}

	records, err := h.moodService.Records(user.ID, from)
	if err != nil {
		writeServiceError(w, err, "load mood records", "user_id", user.ID)
		return
	}

	if records == nil {
		records = []*model.MoodRecord{}
	}
	render.JSON(w, http.StatusOK, map[string]any{"records": records})
}
