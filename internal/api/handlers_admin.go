package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := s.svc.Login(req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"token":      token,
		"expires_in": models.SessionTokenTTLHours * 3600,
	})
}

// handleForgotPassword always answers the same way, so the endpoint cannot be
// used to probe for the admin address.
func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	s.svc.ForgotPassword(r.Context(), req.Email)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "if the address is registered, a reset link has been sent",
	})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.svc.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		// A bad or expired reset token is a client input problem on this
		// endpoint, not a missing credential, so it gets a 400 like a weak
		// password does.
		if domain.IsAuth(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeDomainError(w, err)
		return
	}

	// The admin password is deployment configuration, so the reset cannot take
	// effect until that value is rotated; the response says so.
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "password reset accepted; the configured admin password must be updated for the change to take effect",
	})
}

func (s *Server) handleAdminBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	bookings, err := s.svc.ListBookings(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "bookings": bookings})
}

// handleAdminBooking serves GET and status PUT for a single booking addressed
// by path suffix.
func (s *Server) handleAdminBooking(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/admin/bookings/"
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "booking id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		booking, err := s.svc.GetBooking(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)

	case http.MethodPut:
		var req struct {
			Status string `json:"status"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, err)
			return
		}

		booking, err := s.svc.UpdateBookingStatus(r.Context(), id, req.Status)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	buf, err := s.svc.ExportBookingsXLSX(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleAdminContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var patch models.ContentDocument
	if err := decodeJSON(r, &patch); err != nil {
		writeDomainError(w, err)
		return
	}

	doc, err := s.svc.UpdateContent(r.Context(), patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := s.svc.AnalyticsStats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.uploads == nil {
		writeError(w, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	var req struct {
		Image string `json:"image"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	url, err := s.uploads.SaveBase64(req.Image)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "url": url})
}
