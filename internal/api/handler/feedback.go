package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/customer-pulse-api/infrastructure/repository"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/scoring"
	"github.com/vfg2006/customer-pulse-api/pkg/apiErrors"
	"github.com/vfg2006/customer-pulse-api/pkg/log"
	"github.com/vfg2006/customer-pulse-api/pkg/utils"
)

type CreateFeedbackRequest struct {
	CustomerEmail string           `json:"customer_email"`
	CustomerName  string           `json:"customer_name"`
	CustomerPhone *string          `json:"customer_phone"`
	Score         int              `json:"score"`
	Comment       *string          `json:"comment"`
	Date          *time.Time       `json:"date"`
	Campaign      string           `json:"campaign"`
	Answers       []map[string]any `json:"answers"`
}

type AddNoteRequest struct {
	Text string `json:"text"`
}

// CreateFeedbackResponse registra uma nova resposta de pesquisa de satisfação
func CreateFeedbackResponse(feedbackRepo repository.FeedbackRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req CreateFeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		// A nota precisa estar no intervalo aceito antes de qualquer persistência
		if _, err := scoring.Classify(req.Score); err != nil {
			logger.WithFields(log.Fields{
				"score": req.Score,
				"error": err.Error(),
			}).Warn("responses: rejected out of range score")

			apiErrors.WriteError(w, apiErrors.ErrInvalidScore, "Nota deve estar entre 0 e 10", map[string]any{
				"score": req.Score,
			})
			return
		}

		answers := make([]domain.Answer, 0, len(req.Answers))
		for _, raw := range req.Answers {
			answer, err := domain.NormalizeAnswer(raw)
			if err != nil {
				logger.WithField("error", err.Error()).Warn("responses: rejected malformed answer")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}
			answers = append(answers, *answer)
		}

		date := time.Now()
		if req.Date != nil {
			date = *req.Date
		}

		response := &domain.FeedbackResponse{
			CustomerEmail: req.CustomerEmail,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Score:         req.Score,
			Comment:       req.Comment,
			Date:          date,
			Campaign:      req.Campaign,
			Answers:       answers,
		}

		created, err := feedbackRepo.Create(response)
		if err != nil {
			logger.WithField("error", err.Error()).Error("responses: failed to persist response")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar resposta", nil)
			return
		}

		logger.WithFields(log.Fields{
			"response_id": created.ID,
			"score":       created.Score,
			"campaign":    created.Campaign,
		}).Info("responses: response created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.WithField("error", err.Error()).Error("responses: failed to encode response")
		}
	})
}

// ListFeedbackResponses lista as respostas registradas, com filtro opcional de período
func ListFeedbackResponses(feedbackRepo repository.FeedbackRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var responses []*domain.FeedbackResponse
		var err error

		startParam := r.URL.Query().Get("start_date")
		endParam := r.URL.Query().Get("end_date")

		if startParam != "" || endParam != "" {
			startDate, parseErr := utils.ParseDate(startParam)
			if parseErr != nil {
				logger.WithFields(log.Fields{
					"start_date": startParam,
					"error":      parseErr.Error(),
				}).Warn("responses: invalid start_date parameter")

				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro start_date inválido", nil)
				return
			}

			endDate, parseErr := utils.ParseDate(endParam)
			if parseErr != nil {
				logger.WithFields(log.Fields{
					"end_date": endParam,
					"error":    parseErr.Error(),
				}).Warn("responses: invalid end_date parameter")

				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro end_date inválido", nil)
				return
			}

			responses, err = feedbackRepo.ListByPeriod(*startDate, *endDate)
		} else {
			responses, err = feedbackRepo.List()
		}

		if err != nil {
			logger.WithField("error", err.Error()).Error("responses: failed to list responses")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar respostas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses); err != nil {
			logger.WithField("error", err.Error()).Error("responses: failed to encode response")
		}
	})
}

// AddFeedbackNote acrescenta uma anotação interna a uma resposta existente
func AddFeedbackNote(feedbackRepo repository.FeedbackRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		responseID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if responseID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da resposta não fornecido", nil)
			return
		}

		var req AddNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Text == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Texto da anotação é obrigatório", nil)
			return
		}

		note := domain.NoteEntry{
			Date: time.Now(),
			Text: req.Text,
		}

		if err := feedbackRepo.AppendNote(responseID, note); err != nil {
			logger.WithFields(log.Fields{
				"response_id": responseID,
				"error":       err.Error(),
			}).Error("responses: failed to append note")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar anotação", nil)
			return
		}

		logger.WithField("response_id", responseID).Info("responses: note appended")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(note); err != nil {
			logger.WithField("error", err.Error()).Error("responses: failed to encode response")
		}
	})
}
