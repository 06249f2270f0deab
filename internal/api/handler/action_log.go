package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/vfg2006/customer-pulse-api/infrastructure/repository"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/customer-pulse-api/pkg/log"
)

type RegisterActionRequest struct {
	ClientID string  `json:"client_id"`
	Category string  `json:"category"`
	Kind     string  `json:"kind"`
	Notes    *string `json:"notes"`
}

// RegisterAction acrescenta uma entrada ao log de ações de um cliente
func RegisterAction(actionLogRepo repository.ActionLogRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req RegisterActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.ClientID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador do cliente é obrigatório", nil)
			return
		}

		category := domain.InsightCategory(req.Category)
		if !domain.ValidInsightCategory(category) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidCategory, "Categoria de insight desconhecida", map[string]any{
				"category": req.Category,
			})
			return
		}

		kind := domain.ActionKind(req.Kind)
		if !domain.ValidActionKind(kind) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidCategory, "Tipo de ação desconhecido", map[string]any{
				"kind": req.Kind,
			})
			return
		}

		entry := &domain.ActionLogEntry{
			ClientID:  normalizeClientID(req.ClientID),
			Category:  category,
			Kind:      kind,
			Notes:     req.Notes,
			CreatedAt: time.Now(),
		}

		created, err := actionLogRepo.Append(entry)
		if err != nil {
			logger.WithField("error", err.Error()).Error("actions: failed to append action")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar ação", nil)
			return
		}

		logger.WithFields(log.Fields{
			"action_id": created.ID,
			"client_id": created.ClientID,
			"category":  created.Category,
			"kind":      created.Kind,
		}).Info("actions: action registered")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.WithField("error", err.Error()).Error("actions: failed to encode response")
		}
	})
}

// normalizeClientID normaliza emails de clientes mantendo IDs de leads
// intactos, já que IDs gerados são sensíveis a maiúsculas
func normalizeClientID(clientID string) string {
	if strings.Contains(clientID, "@") {
		return domain.NormalizeCustomerEmail(clientID)
	}
	return strings.TrimSpace(clientID)
}

// ListActions lista o log de ações, com filtro opcional por cliente
func ListActions(actionLogRepo repository.ActionLogRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var entries []*domain.ActionLogEntry
		var err error

		clientID := r.URL.Query().Get("client_id")
		if clientID != "" {
			entries, err = actionLogRepo.ListByClient(normalizeClientID(clientID))
		} else {
			entries, err = actionLogRepo.List()
		}

		if err != nil {
			logger.WithField("error", err.Error()).Error("actions: failed to list actions")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar ações", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.WithField("error", err.Error()).Error("actions: failed to encode response")
		}
	})
}
