package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/rahmadiangg/attendance-management/internal/transport"
	"github.com/rahmadiangg/attendance-management/pkg/logger"
)

type ServiceAPI interface {
	Scan(ctx context.Context, dto ScanDTO) (*ScanResult, error)
	GetAttendanceBySchedule(scheduleID int64, date *time.Time) (*ScheduleView, error)
	GetAttendanceByUser(userID int64, filter ListFilter) (*UserView, error)
	GetAttendanceSummary(filter ListFilter) (*SummaryView, error)
	UpdateAttendance(id int64, dto UpdateAttendanceDTO) (*Record, error)
	DeleteAttendance(id int64) error
	CreateManualAttendance(ctx context.Context, dto ManualAttendanceDTO) (*Record, error)
	GetLastAttendanceBySchedule(scheduleID int64) (*LastScansView, error)
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

// Scan is the unauthenticated device endpoint. A duplicate still answers
// with the existing record so the reader can display it.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var dto ScanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "RFID card number is required")
		return
	}

	result, err := h.Service.Scan(r.Context(), dto)
	if err != nil {
		if err == ErrDuplicateScan && result != nil && result.Record != nil {
			h.WriteErrorData(w, http.StatusBadRequest, err.Error(), result.Record)
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	message := fmt.Sprintf("Attendance recorded successfully with status %s", result.Status)
	h.WriteMessage(w, http.StatusCreated, message, result.Record)
}

func (h *Handler) GetAttendanceBySchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, ok := h.parseParam(w, r, "scheduleId")
	if !ok {
		return
	}

	var date *time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	view, err := h.Service.GetAttendanceBySchedule(scheduleID, date)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, view)
}

func (h *Handler) GetAttendanceByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.parseParam(w, r, "userId")
	if !ok {
		return
	}

	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	view, err := h.Service.GetAttendanceByUser(userID, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, view)
}

func (h *Handler) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	view, err := h.Service.GetAttendanceSummary(filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, view)
}

func (h *Handler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}

	var dto UpdateAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.UpdateAttendance(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteMessage(w, http.StatusOK, "Attendance updated successfully", record)
}

func (h *Handler) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteAttendance(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteMessage(w, http.StatusOK, "Attendance deleted successfully", nil)
}

func (h *Handler) CreateManualAttendance(w http.ResponseWriter, r *http.Request) {
	var dto ManualAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.CreateManualAttendance(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteMessage(w, http.StatusCreated, "Manual attendance created successfully", record)
}

func (h *Handler) GetLastAttendanceBySchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, ok := h.parseParam(w, r, "scheduleId")
	if !ok {
		return
	}

	view, err := h.Service.GetLastAttendanceBySchedule(scheduleID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, view)
}

func (h *Handler) parseFilter(w http.ResponseWriter, r *http.Request) (ListFilter, bool) {
	var filter ListFilter

	q := r.URL.Query()
	if startStr, endStr := q.Get("startDate"), q.Get("endDate"); startStr != "" && endStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "startDate must be a valid date (YYYY-MM-DD)")
			return filter, false
		}
		end, err := parseDate(endStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "endDate must be a valid date (YYYY-MM-DD)")
			return filter, false
		}
		// End bound covers the whole end day.
		_, endOfDay := DayWindow(end)
		filter.StartDate = &start
		filter.EndDate = &endOfDay
	}
	if scheduleStr := q.Get("scheduleId"); scheduleStr != "" {
		scheduleID, err := strconv.ParseInt(scheduleStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "scheduleId must be numeric")
			return filter, false
		}
		filter.ScheduleID = &scheduleID
	}
	return filter, true
}

func (h *Handler) parseParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Logger.Error("invalid path parameter", "param", name, "value", raw)
		h.WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
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
