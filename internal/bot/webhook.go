package bot

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WebhookController receives platform interactions over HTTP. Each
// request carries one decoded Interaction; the reply body is the Reply
// for the connector to render.
type WebhookController struct {
	mux    *Mux
	logger *zap.Logger
}

func NewWebhookController(mux *Mux, logger *zap.Logger) *WebhookController {
	return &WebhookController{
		mux:    mux,
		logger: logger,
	}
}

func (c *WebhookController) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/interactions", c.HandleInteraction)
	return r
}

func (c *WebhookController) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	var ic Interaction
	if err := json.NewDecoder(r.Body).Decode(&ic); err != nil {
		c.logger.Warn("invalid interaction payload", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "payload must be valid JSON"})
		return
	}

	reply := c.mux.Dispatch(r.Context(), ic)
	c.writeJSON(w, http.StatusOK, reply)
}

func (c *WebhookController) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		c.logger.Error("encoding response failed", zap.Error(err))
	}
}
