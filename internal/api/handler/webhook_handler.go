package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"coursework_tracker/internal/app/service"
	"coursework_tracker/internal/common"
	"coursework_tracker/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const runnerSecretHeader = "X-Runner-Secret"

type WebhookHandler struct {
	webhookService *service.WebhookService
	secret         string
	logger         *zap.SugaredLogger
}

// NewWebhookHandler serves the runner callback. An empty secret leaves the
// endpoint open.
func NewWebhookHandler(ws *service.WebhookService, secret string) *WebhookHandler {
	return &WebhookHandler{webhookService: ws, secret: secret, logger: logger.NewNamedLogger("webhook")}
}

func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/callback", h.handleRunnerCallback)
}

func (h *WebhookHandler) handleRunnerCallback(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(runnerSecretHeader)), []byte(h.secret)) != 1 {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid runner secret")
		return
	}

	var payload service.RunnerCallbackPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Warnf("Invalid runner callback payload: %v", err)
		common.RespondWithError(w, http.StatusBadRequest, "Invalid callback payload")
		return
	}
	defer r.Body.Close()

	if _, err := h.webhookService.HandleRunnerCallback(r.Context(), payload); err != nil {
		h.logger.Errorf("Error recording result for submission %d: %v", payload.SubmissionID, err)
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
