package http

import (
	"net/http"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/service"
)

type EventHandler struct {
	eventSvc service.EventService
}

func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventSvc.ListEvents(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"events":  events,
	})
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	event, err := h.eventSvc.GetEvent(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"event":   event,
	})
}

type eventRequest struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	ShortDescription     string `json:"short_description"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	Location             string `json:"location"`
	MaxParticipants      *int32 `json:"max_participants"`
	RegistrationRequired bool   `json:"registration_required"`
	RegistrationDeadline string `json:"registration_deadline"`
	Status               string `json:"status"`
	Featured             bool   `json:"featured"`
}

func (r *eventRequest) toDomain(id int32) *domain.Event {
	return &domain.Event{
		ID:                   id,
		Title:                r.Title,
		Description:          r.Description,
		ShortDescription:     r.ShortDescription,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		Location:             r.Location,
		MaxParticipants:      r.MaxParticipants,
		RegistrationRequired: r.RegistrationRequired,
		RegistrationDeadline: r.RegistrationDeadline,
		Status:               domain.EventStatus(r.Status),
		Featured:             r.Featured,
	}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event := req.toDomain(0)
	if err := h.eventSvc.CreateEvent(r.Context(), event); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"event":   event,
	})
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req eventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event := req.toDomain(id)
	if err := h.eventSvc.UpdateEvent(r.Context(), event); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"event":   event,
	})
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.eventSvc.DeleteEvent(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Event deleted",
	})
}
