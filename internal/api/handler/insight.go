package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/customer-pulse-api/infrastructure/repository"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/insighting"
	"github.com/vfg2006/customer-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/customer-pulse-api/pkg/log"
)

// GetActionInsights recalcula os insights acionáveis sobre o estado atual dos dados
func GetActionInsights(
	service insighting.Insighter,
	feedbackRepo repository.FeedbackRepository,
	leadRepo repository.LeadRepository,
	actionLogRepo repository.ActionLogRepository,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		categoryParam := r.URL.Query().Get("category")
		if categoryParam != "" && !domain.ValidInsightCategory(domain.InsightCategory(categoryParam)) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidCategory, "Categoria de insight desconhecida", map[string]any{
				"category": categoryParam,
			})
			return
		}

		responses, err := feedbackRepo.List()
		if err != nil {
			logger.WithField("error", err.Error()).Error("insights: failed to list responses")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar respostas", nil)
			return
		}

		leads, err := leadRepo.List()
		if err != nil {
			logger.WithField("error", err.Error()).Error("insights: failed to list leads")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar leads", nil)
			return
		}

		// Sem o log de ações os insights são gerados como se nenhum tivesse
		// sido tratado, o que é preferível a não gerar nada
		actions, err := actionLogRepo.List()
		if err != nil {
			logger.WithField("error", err.Error()).Warn("insights: failed to list actions, generating without them")
			actions = nil
		}

		insights := service.GenerateInsights(responses, leads, actions)

		if categoryParam != "" {
			insights = domain.FilterInsightsByCategory(insights, domain.InsightCategory(categoryParam))
		}

		logger.WithFields(log.Fields{
			"insights": len(insights),
			"category": categoryParam,
		}).Info("insights: insights generated")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(insights); err != nil {
			logger.WithField("error", err.Error()).Error("insights: failed to encode response")
		}
	})
}
