package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vfg2006/customer-pulse-api/infrastructure/repository"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/scoring"
	"github.com/vfg2006/customer-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/customer-pulse-api/pkg/log"
	"github.com/vfg2006/customer-pulse-api/pkg/utils"
)

// GetSatisfactionSummary calcula o índice de satisfação agregado ao vivo,
// com filtro opcional de período
func GetSatisfactionSummary(feedbackRepo repository.FeedbackRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var responses []*domain.FeedbackResponse
		var err error

		startParam := r.URL.Query().Get("start_date")
		endParam := r.URL.Query().Get("end_date")
		if startParam == "" && endParam == "" {
			responses, err = feedbackRepo.List()
		} else {
			startDate, parseErr := utils.ParseDate(startParam)
			if parseErr != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro start_date inválido", nil)
				return
			}

			endDate, parseErr := utils.ParseDate(endParam)
			if parseErr != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro end_date inválido", nil)
				return
			}

			if endDate.IsZero() {
				now := time.Now()
				endDate = &now
			}

			responses, err = feedbackRepo.ListByPeriod(*startDate, *endDate)
		}

		if err != nil {
			logger.WithField("error", err.Error()).Error("satisfaction: failed to list responses")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar respostas", nil)
			return
		}

		summary := scoring.Summarize(responses)

		logger.WithFields(log.Fields{
			"index": summary.Index,
			"total": summary.Total,
		}).Info("satisfaction: summary computed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithField("error", err.Error()).Error("satisfaction: failed to encode response")
		}
	})
}

// GetSatisfactionHistory retorna os snapshots diários persistidos pelo agendador
func GetSatisfactionHistory(snapshotRepo repository.SatisfactionSnapshotRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		endDate := time.Now()
		if endParam := r.URL.Query().Get("end_date"); endParam != "" {
			parsed, err := utils.ParseDate(endParam)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro end_date inválido", nil)
				return
			}
			endDate = *parsed
		}

		// Por padrão o histórico cobre os últimos 30 dias
		startDate := endDate.AddDate(0, 0, -30)
		if startParam := r.URL.Query().Get("start_date"); startParam != "" {
			parsed, err := utils.ParseDate(startParam)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro start_date inválido", nil)
				return
			}
			startDate = *parsed
		}

		snapshots, err := snapshotRepo.GetByDateRange(startDate, endDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": startDate.Format(time.DateOnly),
				"end_date":   endDate.Format(time.DateOnly),
				"error":      err.Error(),
			}).Error("satisfaction: failed to fetch history")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar histórico", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshots); err != nil {
			logger.WithField("error", err.Error()).Error("satisfaction: failed to encode response")
		}
	})
}
