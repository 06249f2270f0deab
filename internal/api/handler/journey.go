package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/customer-pulse-api/infrastructure/repository"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/journeying"
	"github.com/vfg2006/customer-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/customer-pulse-api/pkg/log"
)

// GetCustomerJourneys monta a visão consolidada de jornadas dos clientes
func GetCustomerJourneys(
	builder journeying.JourneyBuilder,
	feedbackRepo repository.FeedbackRepository,
	actionLogRepo repository.ActionLogRepository,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		responses, err := feedbackRepo.List()
		if err != nil {
			logger.WithField("error", err.Error()).Error("journeys: failed to list responses")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar respostas", nil)
			return
		}

		// O log de ações só enriquece a jornada. Se a busca falhar, a visão
		// é montada sem ações em vez de indisponibilizar a listagem.
		actions, err := actionLogRepo.List()
		if err != nil {
			logger.WithField("error", err.Error()).Warn("journeys: failed to list actions, building journeys without them")
			actions = nil
		}

		journeys := builder.BuildJourneys(responses, actions)

		statusParam := r.URL.Query().Get("status")
		if statusParam != "" {
			status := domain.NPSCategory(statusParam)
			filtered := make([]*domain.CustomerJourney, 0, len(journeys))
			for _, journey := range journeys {
				if journey.CurrentStatus == status {
					filtered = append(filtered, journey)
				}
			}
			journeys = filtered
		}

		if r.URL.Query().Get("attention") == "true" {
			filtered := make([]*domain.CustomerJourney, 0, len(journeys))
			for _, journey := range journeys {
				if journey.NeedsAttention {
					filtered = append(filtered, journey)
				}
			}
			journeys = filtered
		}

		// Respostas sem email caem num agrupamento próprio que pode ser
		// omitido da listagem
		if r.URL.Query().Get("exclude_unidentified") == "true" {
			filtered := make([]*domain.CustomerJourney, 0, len(journeys))
			for _, journey := range journeys {
				if journey.CustomerEmail != domain.UnidentifiedCustomerKey {
					filtered = append(filtered, journey)
				}
			}
			journeys = filtered
		}

		logger.WithField("journeys", len(journeys)).Info("journeys: journeys built")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(journeys); err != nil {
			logger.WithField("error", err.Error()).Error("journeys: failed to encode response")
		}
	})
}
