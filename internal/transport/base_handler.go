package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rahmadiangg/attendance-management/internal"
	"github.com/rahmadiangg/attendance-management/pkg/logger"
)

// Envelope is the wire shape every endpoint answers with.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler provides common functionality for HTTP handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteData writes a success envelope carrying data.
func (h *BaseHandler) WriteData(w http.ResponseWriter, status int, data interface{}) {
	h.writeEnvelope(w, status, Envelope{Success: true, Data: data})
}

// WriteMessage writes a success envelope carrying a message and optional data.
func (h *BaseHandler) WriteMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	h.writeEnvelope(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WriteError writes a failure envelope.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.writeEnvelope(w, status, Envelope{Success: false, Message: message})
}

// WriteErrorData writes a failure envelope carrying data, used by the scan
// endpoint to hand back the already-existing record on a duplicate scan.
func (h *BaseHandler) WriteErrorData(w http.ResponseWriter, status int, message string, data interface{}) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.writeEnvelope(w, status, Envelope{Success: false, Message: message, Data: data})
}

// HandleServiceError maps service-layer errors onto the envelope. AppErrors
// carry their own status; anything else is a 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.writeEnvelope(w, appErr.StatusCode, Envelope{Success: false, Message: appErr.Message})
		return
	}
	h.Logger.Error("unexpected service error", "error", err)
	h.writeEnvelope(w, http.StatusInternalServerError, Envelope{Success: false, Message: "Internal server error"})
}

func (h *BaseHandler) writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// ExtractTokenFromHeader extracts the Bearer token from the Authorization header.
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
