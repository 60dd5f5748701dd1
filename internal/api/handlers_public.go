package api

import (
	"net/http"
	"time"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
	"tripdesk/internal/notify"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBooking is the public intake endpoint. Every rejection lands in the
// error log: validation failures with the submitted fields (redacted), a
// persistence failure as a 500. Notification outcomes never affect the
// response.
func (s *Server) handleBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		status := writeDomainError(w, err)
		s.reportError(r, status, err, "booking_decode", nil)
		return
	}

	booking, err := s.svc.SubmitBooking(r.Context(), &req)
	if err != nil {
		status := writeDomainError(w, err)
		kind := "booking_persist"
		if status == http.StatusBadRequest {
			kind = "booking_validation"
		}
		s.reportError(r, status, err, kind, map[string]any{
			"type":   req.Type,
			"name":   req.Name,
			"email":  req.Email,
			"phone":  req.Phone,
			"urgent": req.Urgent,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "booking received, we will contact you shortly",
		"bookingId": booking.ID,
	})
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	doc, err := s.svc.GetContent(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var msg models.ContactMessage
	if err := decodeJSON(r, &msg); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.svc.SubmitContact(r.Context(), &msg); err != nil {
		status := writeDomainError(w, err)
		if status >= http.StatusInternalServerError {
			s.reportError(r, status, err, "contact_persist", map[string]any{
				"name":  msg.Name,
				"email": msg.Email,
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "message received, thank you",
	})
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var ev models.AnalyticsEvent
	if err := decodeJSON(r, &ev); err != nil {
		writeDomainError(w, err)
		return
	}
	ev.UserAgent = r.UserAgent()

	if err := s.svc.TrackEvent(r.Context(), &ev); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reportError(r *http.Request, status int, err error, kind string, fields map[string]any) {
	if s.notifier == nil {
		return
	}

	var redacted string
	if len(fields) > 0 {
		redacted = notify.RedactContext(fields)
	}

	s.notifier.ReportError(r.Context(), domain.ErrorRow{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Kind:      kind,
		Endpoint:  r.URL.Path,
		Method:    r.Method,
		Status:    status,
		Message:   err.Error(),
		Context:   redacted,
		UserAgent: r.UserAgent(),
		URL:       r.URL.String(),
	})
}
