package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/customer-pulse-api/infrastructure/repository"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/customer-pulse-api/pkg/log"
)

type CreateLeadRequest struct {
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Phone   *string          `json:"phone"`
	Status  *string          `json:"status"`
	Value   float64          `json:"value"`
	Source  string           `json:"source"`
	Answers []map[string]any `json:"answers"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status"`
}

type UpdateLeadValueRequest struct {
	Value float64 `json:"value"`
}

// CreateLead registra um novo lead no pipeline de vendas
func CreateLead(leadRepo repository.LeadRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req CreateLeadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do lead é obrigatório", nil)
			return
		}

		if req.Value < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Valor estimado não pode ser negativo", nil)
			return
		}

		// Leads entram no funil como novos, salvo indicação explícita
		status := domain.LeadStatusNew
		if req.Status != nil {
			status = domain.LeadStatus(*req.Status)
			if !domain.ValidLeadStatus(status) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidLeadStatus, "Status de lead desconhecido", map[string]any{
					"status": *req.Status,
				})
				return
			}
		}

		answers := make([]domain.Answer, 0, len(req.Answers))
		for _, raw := range req.Answers {
			answer, err := domain.NormalizeAnswer(raw)
			if err != nil {
				logger.WithField("error", err.Error()).Warn("leads: rejected malformed answer")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}
			answers = append(answers, *answer)
		}

		lead := &domain.LeadRecord{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Status:    status,
			Value:     req.Value,
			Source:    req.Source,
			Answers:   answers,
			CreatedAt: time.Now(),
		}

		created, err := leadRepo.Create(lead)
		if err != nil {
			logger.WithField("error", err.Error()).Error("leads: failed to persist lead")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar lead", nil)
			return
		}

		logger.WithFields(log.Fields{
			"lead_id": created.ID,
			"status":  created.Status,
		}).Info("leads: lead created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.WithField("error", err.Error()).Error("leads: failed to encode response")
		}
	})
}

// ListLeads lista os leads do pipeline, com filtros opcionais de status e abertura
func ListLeads(leadRepo repository.LeadRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		leads, err := leadRepo.List()
		if err != nil {
			logger.WithField("error", err.Error()).Error("leads: failed to list leads")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar leads", nil)
			return
		}

		statusParam := r.URL.Query().Get("status")
		if statusParam != "" {
			status := domain.LeadStatus(statusParam)
			if !domain.ValidLeadStatus(status) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidLeadStatus, "Status de lead desconhecido", map[string]any{
					"status": statusParam,
				})
				return
			}

			filtered := make([]*domain.LeadRecord, 0, len(leads))
			for _, lead := range leads {
				if lead.Status == status {
					filtered = append(filtered, lead)
				}
			}
			leads = filtered
		}

		if r.URL.Query().Get("open") == "true" {
			filtered := make([]*domain.LeadRecord, 0, len(leads))
			for _, lead := range leads {
				if lead.IsOpen() {
					filtered = append(filtered, lead)
				}
			}
			leads = filtered
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(leads); err != nil {
			logger.WithField("error", err.Error()).Error("leads: failed to encode response")
		}
	})
}

// UpdateLeadStatus move um lead para outro estágio do funil
func UpdateLeadStatus(leadRepo repository.LeadRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		leadID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if leadID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do lead não fornecido", nil)
			return
		}

		var req UpdateLeadStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		status := domain.LeadStatus(req.Status)
		if !domain.ValidLeadStatus(status) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidLeadStatus, "Status de lead desconhecido", map[string]any{
				"status": req.Status,
			})
			return
		}

		if err := leadRepo.UpdateStatus(leadID, status); err != nil {
			logger.WithFields(log.Fields{
				"lead_id": leadID,
				"status":  status,
				"error":   err.Error(),
			}).Error("leads: failed to update lead status")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar status do lead", nil)
			return
		}

		logger.WithFields(log.Fields{
			"lead_id": leadID,
			"status":  status,
		}).Info("leads: lead status updated")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	})
}

// UpdateLeadValue atualiza o valor estimado de um lead
func UpdateLeadValue(leadRepo repository.LeadRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		leadID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if leadID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do lead não fornecido", nil)
			return
		}

		var req UpdateLeadValueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Value < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Valor estimado não pode ser negativo", nil)
			return
		}

		if err := leadRepo.UpdateValue(leadID, req.Value); err != nil {
			logger.WithFields(log.Fields{
				"lead_id": leadID,
				"error":   err.Error(),
			}).Error("leads: failed to update lead value")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar valor do lead", nil)
			return
		}

		logger.WithFields(log.Fields{
			"lead_id": leadID,
			"value":   req.Value,
		}).Info("leads: lead value updated")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	})
}
