package handler

import (
	"net/http"

	"coursework_tracker/internal/app/service"
	"coursework_tracker/internal/common"
	"coursework_tracker/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

const serviceVersion = "1.0.0"

type MetaHandler struct {
	languageService *service.LanguageService
}

func NewMetaHandler(ls *service.LanguageService) *MetaHandler {
	return &MetaHandler{languageService: ls}
}

func (h *MetaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.info)
	r.Get("/languages", h.languages)
}

func (h *MetaHandler) info(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"service": "coursework-tracker",
		"status":  "running",
		"version": serviceVersion,
	})
}

type languagesResponse struct {
	Supported []string                  `json:"supported"`
	Configs   map[string]model.Language `json:"configs"`
}

func (h *MetaHandler) languages(w http.ResponseWriter, r *http.Request) {
	resp := languagesResponse{Supported: h.languageService.Supported(), Configs: map[string]model.Language{}}
	for _, key := range resp.Supported {
		if cfg, ok := h.languageService.Config(key); ok {
			resp.Configs[key] = cfg
		}
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
