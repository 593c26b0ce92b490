package http

import (
	"net/http"
	"strconv"

	"anamola-backend/internal/service"

	"github.com/gorilla/mux"
)

type MemberHandler struct {
	memberSvc service.MemberService
}

func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

func (h *MemberHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	member, ok := MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	dashboard, err := h.memberSvc.Dashboard(r.Context(), member.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"dashboard": dashboard,
	})
}

func (h *MemberHandler) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	member, ok := MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	registration, err := h.memberSvc.RegisterForEvent(r.Context(), member.ID, eventID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"message":      "Registered for event",
		"registration": registration,
	})
}

// pathID parses the numeric {name} path variable, answering a 400 itself
// when the value is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return int32(id), true
}
