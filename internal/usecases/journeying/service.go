// Package journeying consolida as respostas de satisfação e o log de ações
// em jornadas por cliente, com tendência, dias sem contato e sinalização de
// atenção. Tudo é recalculado a partir dos dados de entrada a cada chamada.
package journeying

import (
	"math"
	"sort"
	"time"

	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/scoring"
	"github.com/vfg2006/customer-pulse-api/pkg/utils"
)

// Dias sem contato a partir dos quais um detrator passa a exigir atenção
const attentionContactDays = 7

// JourneyBuilder define a interface para montagem das jornadas de clientes
type JourneyBuilder interface {
	// BuildJourneys agrupa as respostas por cliente, anexa o log de ações e
	// devolve as jornadas já ordenadas: quem precisa de atenção primeiro,
	// depois as respostas mais recentes.
	BuildJourneys(
		responses []*domain.FeedbackResponse,
		actions []*domain.ActionLogEntry,
	) []*domain.CustomerJourney
}

type Service struct {
	// Now permite injetar o relógio nos testes
	Now func() time.Time
}

func NewService() *Service {
	return &Service{Now: time.Now}
}

func (s *Service) BuildJourneys(
	responses []*domain.FeedbackResponse,
	actions []*domain.ActionLogEntry,
) []*domain.CustomerJourney {
	now := s.Now()

	groups := make(map[string][]*domain.FeedbackResponse)
	order := make([]string, 0)
	for _, response := range responses {
		if response == nil {
			continue
		}

		key := domain.NormalizeCustomerEmail(response.CustomerEmail)
		if _, exists := groups[key]; !exists {
			order = append(order, key)
		}
		groups[key] = append(groups[key], response)
	}

	actionsByClient := make(map[string][]*domain.ActionLogEntry)
	for _, entry := range actions {
		if entry == nil {
			continue
		}

		key := domain.NormalizeCustomerEmail(entry.ClientID)
		actionsByClient[key] = append(actionsByClient[key], entry)
	}

	journeys := make([]*domain.CustomerJourney, 0, len(groups))
	for _, key := range order {
		journeys = append(journeys, s.buildJourney(key, groups[key], actionsByClient[key], now))
	}

	prioritize(journeys)
	return journeys
}

func (s *Service) buildJourney(
	email string,
	responses []*domain.FeedbackResponse,
	actions []*domain.ActionLogEntry,
	now time.Time,
) *domain.CustomerJourney {
	// Ordena por data crescente: estatísticas e tendência dependem da
	// cronologia real dos eventos, não da ordem de inserção
	sorted := make([]*domain.FeedbackResponse, len(responses))
	copy(sorted, responses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	total := 0
	for _, response := range sorted {
		total += response.Score
	}
	averageScore := utils.RoundWithOneDecimalPlace(float64(total) / float64(len(sorted)))

	// A resposta mais recente por data define o estado atual do cliente,
	// inclusive nome e telefone exibidos na jornada
	latest := sorted[len(sorted)-1]
	currentStatus, err := scoring.Classify(latest.Score)
	if err != nil {
		currentStatus = domain.CategoryDetractor
	}

	trend, previousStatus := scoring.DetectTrend(sorted)

	journey := &domain.CustomerJourney{
		CustomerEmail:        email,
		CustomerName:         latest.CustomerName,
		CustomerPhone:        latest.CustomerPhone,
		Responses:            sorted,
		Actions:              actions,
		AverageScore:         averageScore,
		CurrentStatus:        currentStatus,
		PreviousStatus:       previousStatus,
		Trend:                trend,
		LastResponseAt:       latest.Date,
		DaysSinceLastContact: daysSinceLastContact(sorted, actions, now),
	}

	journey.NeedsAttention = needsAttention(journey)
	return journey
}

// daysSinceLastContact conta os dias desde a ação mais recente do log. Sem
// ações registradas, vale a data da última resposta. A ação mais recente é
// sempre selecionada pelo maior timestamp, nunca pela posição no array.
func daysSinceLastContact(
	responses []*domain.FeedbackResponse,
	actions []*domain.ActionLogEntry,
	now time.Time,
) int {
	reference := responses[len(responses)-1].Date

	if len(actions) > 0 {
		latest := actions[0].CreatedAt
		for _, entry := range actions[1:] {
			if entry.CreatedAt.After(latest) {
				latest = entry.CreatedAt
			}
		}
		reference = latest
	}

	days := int(math.Floor(now.Sub(reference).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// needsAttention sinaliza jornadas que exigem acompanhamento humano:
// detrator esquecido há mais de uma semana, satisfação em queda, ou
// detrator sem nenhuma ação registrada
func needsAttention(journey *domain.CustomerJourney) bool {
	if journey.CurrentStatus == domain.CategoryDetractor && journey.DaysSinceLastContact > attentionContactDays {
		return true
	}

	if journey.Trend == domain.TrendDeclining {
		return true
	}

	return journey.CurrentStatus == domain.CategoryDetractor && len(journey.Actions) == 0
}

// prioritize ordena as jornadas: quem precisa de atenção vem primeiro e,
// dentro de cada partição, a resposta mais recente ganha
func prioritize(journeys []*domain.CustomerJourney) {
	sort.SliceStable(journeys, func(i, j int) bool {
		if journeys[i].NeedsAttention != journeys[j].NeedsAttention {
			return journeys[i].NeedsAttention
		}
		return journeys[i].LastResponseAt.After(journeys[j].LastResponseAt)
	})
}
