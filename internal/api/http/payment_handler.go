package http

import (
	"net/http"

	"anamola-backend/internal/service"
)

type PaymentHandler struct {
	activationSvc service.ActivationService
}

func NewPaymentHandler(activationSvc service.ActivationService) *PaymentHandler {
	return &PaymentHandler{activationSvc: activationSvc}
}

type checkoutRequest struct {
	Email          string `json:"email"`
	FullName       string `json:"fullName"`
	MembershipType string `json:"membershipType"`
}

func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.activationSvc.CreateCheckout(r.Context(), req.Email, req.FullName, req.MembershipType)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"sessionId": session.ID,
		"url":       session.URL,
	})
}

type paymentSuccessRequest struct {
	SessionID      string `json:"sessionId"`
	Email          string `json:"email"`
	FullName       string `json:"fullName"`
	MembershipType string `json:"membershipType"`
}

func (h *PaymentHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	var req paymentSuccessRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.activationSvc.VerifyAndActivate(r.Context(), req.SessionID, req.Email, req.FullName, req.MembershipType)
	if err != nil {
		respondError(w, err)
		return
	}

	payload := map[string]any{
		"success": true,
		"user":    result.Member,
	}
	if result.AlreadyProcessed {
		payload["message"] = "Payment already processed"
	} else {
		payload["message"] = "Payment successful and account created"
		// Surfaced exactly once; the password is never stored or re-displayed.
		payload["password"] = result.Password
	}
	writeJSON(w, http.StatusOK, payload)
}
