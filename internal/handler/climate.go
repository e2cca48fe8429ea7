package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/bienestar-app/bienestar/internal/ctxkeys"
	"github.com/bienestar-app/bienestar/internal/render"
	"github.com/bienestar-app/bienestar/internal/service"
)

type ClimateHandler struct {
	climateService *service.ClimateService
	reportService  *service.ReportService
	loc            *time.Location
	now            func() time.Time
}

func NewClimateHandler(climateService *service.ClimateService, reportService *service.ReportService, loc *time.Location) *ClimateHandler {
	return &ClimateHandler{
		climateService: climateService,
		reportService:  reportService,
		loc:            loc,
		now:            time.Now,
	}
}

// day reads a YYYY-MM-DD query parameter, defaulting to today.
func (h *ClimateHandler) day(r *http.Request, field string) (time.Time, error) {
	day, err := parseDay(field, r.URL.Query().Get(field), h.loc)
	if err != nil {
		return time.Time{}, err
	}
	if day == nil {
		return h.now().In(h.loc), nil
	}
	return *day, nil
}

func (h *ClimateHandler) Daily(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	date, err := h.day(r, "date")
	if err != nil {
		writeServiceError(w, err, "parse date")
		return
	}

	group := strings.TrimSpace(r.URL.Query().Get("group"))
	daily, err := h.climateService.Daily(profile, date, group)
	if err != nil {
		writeServiceError(w, err, "compute daily climate", "user_id", profile.UserID, "group", group)
		return
	}

	render.JSON(w, http.StatusOK, daily)
}

func (h *ClimateHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	end, err := h.day(r, "end")
	if err != nil {
		writeServiceError(w, err, "parse end")
		return
	}

	group := strings.TrimSpace(r.URL.Query().Get("group"))
	weekly, err := h.climateService.Weekly(profile, end, group)
	if err != nil {
		writeServiceError(w, err, "compute weekly climate", "user_id", profile.UserID, "group", group)
		return
	}

	render.JSON(w, http.StatusOK, weekly)
}

func (h *ClimateHandler) PublishWeekly(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	var input struct {
		End   string `json:"end"`
		Group string `json:"group"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	end, err := parseDay("end", input.End, h.loc)
	if err != nil {
		writeServiceError(w, err, "parse end")
		return
	}
	if end == nil {
		today := h.now().In(h.loc)
		end = &today
	}

	published, err := h.reportService.PublishWeekly(r.Context(), profile, *end, strings.TrimSpace(input.Group))
	if err != nil {
		writeServiceError(w, err, "publish weekly report", "user_id", profile.UserID)
		return
	}

	render.JSON(w, http.StatusCreated, published)
}
