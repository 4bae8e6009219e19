package assignment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/rahmadiangg/attendance-management/internal/transport"
	"github.com/rahmadiangg/attendance-management/internal/user"
	"github.com/rahmadiangg/attendance-management/pkg/logger"
)

type ServiceAPI interface {
	AssignUser(dto AssignDTO) (*Assignment, error)
	GetUsersBySchedule(scheduleID int64) ([]*Assignment, error)
	GetSchedulesByUser(userID int64) ([]*Assignment, error)
	UnassignUser(id int64) error
	AvailableUsers(scheduleID int64, search string) ([]user.Summary, error)
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

func (h *Handler) AssignUser(w http.ResponseWriter, r *http.Request) {
	var dto AssignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.AssignUser(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusCreated, a)
}

func (h *Handler) GetUsersBySchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, ok := h.parseParam(w, r, "scheduleId")
	if !ok {
		return
	}

	assignments, err := h.Service.GetUsersBySchedule(scheduleID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, assignments)
}

func (h *Handler) GetSchedulesByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.parseParam(w, r, "userId")
	if !ok {
		return
	}

	assignments, err := h.Service.GetSchedulesByUser(userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, assignments)
}

func (h *Handler) UnassignUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.UnassignUser(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteMessage(w, http.StatusOK, "User removed from schedule", nil)
}

func (h *Handler) AvailableUsers(w http.ResponseWriter, r *http.Request) {
	scheduleIDStr := r.URL.Query().Get("scheduleId")
	scheduleID, err := strconv.ParseInt(scheduleIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "scheduleId query parameter is required")
		return
	}

	users, err := h.Service.AvailableUsers(scheduleID, r.URL.Query().Get("search"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, users)
}

func (h *Handler) parseParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Logger.Error("invalid path parameter", "param", name, "value", raw)
		h.WriteError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
