package http

import (
	"net/http"

	"anamola-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type registerRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	FullName          string `json:"fullName"`
	Phone             string `json:"phone"`
	DateOfBirth       string `json:"dateOfBirth"`
	Address           string `json:"address"`
	City              string `json:"city"`
	Province          string `json:"province"`
	PostalCode        string `json:"postalCode"`
	Occupation        string `json:"occupation"`
	EducationLevel    string `json:"educationLevel"`
	ContactPreference string `json:"contactPreference"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	member, err := h.authSvc.Register(r.Context(), service.RegisterInput{
		Email:             req.Email,
		Password:          req.Password,
		FullName:          req.FullName,
		Phone:             req.Phone,
		DateOfBirth:       req.DateOfBirth,
		Address:           req.Address,
		City:              req.City,
		Province:          req.Province,
		PostalCode:        req.PostalCode,
		Occupation:        req.Occupation,
		EducationLevel:    req.EducationLevel,
		ContactPreference: req.ContactPreference,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User registered successfully",
		"user":    member,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	member, token, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"user":    member,
		"session": map[string]string{"access_token": token},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authSvc.Logout(r.Context(), tokenFromContext(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logout successful",
	})
}

func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	member, ok := MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    member,
	})
}
