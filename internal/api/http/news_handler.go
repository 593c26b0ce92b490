package http

import (
	"net/http"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/service"
)

type NewsHandler struct {
	newsSvc service.NewsService
}

func NewNewsHandler(newsSvc service.NewsService) *NewsHandler {
	return &NewsHandler{newsSvc: newsSvc}
}

func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.newsSvc.ListNews(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"news":    articles,
	})
}

func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	article, err := h.newsSvc.GetNews(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"news":    article,
	})
}

type newsRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	ImageURL string `json:"image_url"`
	Status   string `json:"status"`
	Featured bool   `json:"featured"`
}

func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	article := &domain.NewsArticle{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		ImageURL: req.ImageURL,
		Status:   domain.NewsStatus(req.Status),
		Featured: req.Featured,
	}
	if err := h.newsSvc.CreateNews(r.Context(), article); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"news":    article,
	})
}

func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req newsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	article := &domain.NewsArticle{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		ImageURL: req.ImageURL,
		Status:   domain.NewsStatus(req.Status),
		Featured: req.Featured,
	}
	if err := h.newsSvc.UpdateNews(r.Context(), article); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"news":    article,
	})
}

func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.newsSvc.DeleteNews(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "News article deleted",
	})
}
