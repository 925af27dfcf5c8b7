package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Leganyst/calendar-scheduler/internal/booking"
	"github.com/Leganyst/calendar-scheduler/internal/service"
)

// maxBodyBytes ограничивает тело заявки.
const maxBodyBytes = 64 << 10

type bookingHandler struct {
	recorder BookingRecorder
	logger   *zap.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *bookingHandler) submit(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}

	ack, err := h.recorder.Record(r.Context(), raw, service.TransportHTTP)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidPayload) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("booking submit failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to store booking"})
		return
	}

	writeJSON(w, http.StatusCreated, ack)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
