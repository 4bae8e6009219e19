package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/rahmadiangg/attendance-management/internal/transport"
	"github.com/rahmadiangg/attendance-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) AttendanceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.AttendanceStats()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, stats)
}

func (h *Handler) AttendanceChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.Service.AttendanceChart()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, chart)
}
