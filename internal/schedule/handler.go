package schedule

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/rahmadiangg/attendance-management/internal/transport"
	"github.com/rahmadiangg/attendance-management/pkg/logger"
)

type ServiceAPI interface {
	CreateSchedule(dto CreateScheduleDTO) (*Schedule, error)
	GetSchedules(filter ListFilter) ([]*Schedule, error)
	GetScheduleByID(id int64) (*Schedule, error)
	UpdateSchedule(id int64, dto UpdateScheduleDTO) (*Schedule, error)
	DeleteSchedule(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var dto CreateScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sched, err := h.Service.CreateSchedule(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusCreated, sched)
}

func (h *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	var filter ListFilter

	q := r.URL.Query()
	if startStr, endStr := q.Get("startDate"), q.Get("endDate"); startStr != "" && endStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "startDate must be a valid date (YYYY-MM-DD)")
			return
		}
		end, err := parseDate(endStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "endDate must be a valid date (YYYY-MM-DD)")
			return
		}
		filter.StartDate = &start
		filter.EndDate = &end
	} else if q.Get("upcoming") == "true" {
		filter.Upcoming = true
	}

	schedules, err := h.Service.GetSchedules(filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	sched, err := h.Service.GetScheduleByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, sched)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto UpdateScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sched, err := h.Service.UpdateSchedule(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, sched)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteSchedule(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteMessage(w, http.StatusOK, "Schedule deleted successfully", nil)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid schedule ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid schedule ID")
		return 0, false
	}
	return id, true
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
