// Package insighting gera a lista priorizada de insights acionáveis a partir
// das respostas de satisfação, do pipeline de leads e do log de ações.
// Cada gerador é independente e produz no máximo um insight; o log de ações
// suprime os pares (cliente, categoria) já tratados.
package insighting

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/scoring"
)

// Quantidade de promotores ativos a partir da qual a oportunidade vira prioridade alta
const opportunityHighThreshold = 5

// Dias sem avanço a partir dos quais um lead aberto entra na contagem de risco
const staleLeadDays = 7

type Service struct {
	// Now permite injetar o relógio nos testes
	Now func() time.Time
}

func NewService() *Service {
	return &Service{Now: time.Now}
}

// GenerateInsights recalcula todos os insights a partir dos dados informados.
// Coleções vazias produzem uma lista vazia, nunca erro: o motor é recalculado
// por inteiro a cada chamada e não guarda estado entre execuções.
func (s *Service) GenerateInsights(
	responses []*domain.FeedbackResponse,
	leads []*domain.LeadRecord,
	actions []*domain.ActionLogEntry,
) []*domain.ActionInsight {
	now := s.Now()
	insights := make([]*domain.ActionInsight, 0, 5)

	if insight := s.opportunityInsight(responses, actions, now); insight != nil {
		insights = append(insights, insight)
	}

	if insight := s.riskInsight(responses, leads, actions, now); insight != nil {
		insights = append(insights, insight)
	}

	if insight := s.closedSalesInsight(leads, now); insight != nil {
		insights = append(insights, insight)
	}

	if insight := s.pipelineSalesInsight(leads, actions, now); insight != nil {
		insights = append(insights, insight)
	}

	if insight := s.recoveryInsight(responses, actions, now); insight != nil {
		insights = append(insights, insight)
	}

	// Ordena por prioridade mantendo a ordem de geração entre iguais
	sort.SliceStable(insights, func(i, j int) bool {
		return priorityRank(insights[i].Priority) < priorityRank(insights[j].Priority)
	})

	return insights
}

// opportunityInsight conta promotores que ainda não foram acionados
func (s *Service) opportunityInsight(
	responses []*domain.FeedbackResponse,
	actions []*domain.ActionLogEntry,
	now time.Time,
) *domain.ActionInsight {
	count := 0
	for _, response := range responses {
		category, err := scoring.Classify(response.Score)
		if err != nil || category != domain.CategoryPromoter {
			continue
		}

		entityID := domain.NormalizeCustomerEmail(response.CustomerEmail)
		if IsActive(entityID, domain.InsightOpportunity, actions) {
			count++
		}
	}

	if count == 0 {
		return nil
	}

	priority := domain.PriorityMedium
	if count >= opportunityHighThreshold {
		priority = domain.PriorityHigh
	}

	return &domain.ActionInsight{
		Category:     domain.InsightOpportunity,
		Priority:     priority,
		Title:        "Promotores prontos para indicar",
		Description:  fmt.Sprintf("%d clientes deram nota 9 ou 10 e ainda não foram acionados. Peça uma indicação ou avaliação pública.", count),
		Metric:       fmt.Sprintf("%d promotores", count),
		ActionLabel:  "Ver clientes",
		ActionTarget: "/journeys?status=promoter",
		GeneratedAt:  now,
	}
}

// riskInsight combina detratores ativos com leads abertos parados há mais de uma semana
func (s *Service) riskInsight(
	responses []*domain.FeedbackResponse,
	leads []*domain.LeadRecord,
	actions []*domain.ActionLogEntry,
	now time.Time,
) *domain.ActionInsight {
	detractors := 0
	for _, response := range responses {
		category, err := scoring.Classify(response.Score)
		if err != nil || category != domain.CategoryDetractor {
			continue
		}

		entityID := domain.NormalizeCustomerEmail(response.CustomerEmail)
		if IsActive(entityID, domain.InsightRisk, actions) {
			detractors++
		}
	}

	staleLeads := 0
	for _, lead := range leads {
		if !lead.IsOpen() {
			continue
		}

		days := int(now.Sub(lead.CreatedAt).Hours() / 24)
		if days <= staleLeadDays {
			continue
		}

		if IsActive(lead.ID, domain.InsightRisk, actions) {
			staleLeads++
		}
	}

	total := detractors + staleLeads
	if total == 0 {
		return nil
	}

	// Qualquer detrator ativo torna o risco prioritário; leads parados
	// sozinhos ficam em prioridade média
	priority := domain.PriorityMedium
	if detractors > 0 {
		priority = domain.PriorityHigh
	}

	return &domain.ActionInsight{
		Category:     domain.InsightRisk,
		Priority:     priority,
		Title:        "Clientes e negociações em risco",
		Description:  fmt.Sprintf("%d clientes insatisfeitos ou leads sem avanço há mais de %d dias precisam de contato.", total, staleLeadDays),
		Metric:       fmt.Sprintf("%d em risco", total),
		ActionLabel:  "Ver jornadas",
		ActionTarget: "/journeys?attention=true",
		GeneratedAt:  now,
	}
}

// closedSalesInsight soma os negócios ganhos. Vendas fechadas continuam
// visíveis independente do log de ações: dispensar o insight não apaga
// o resultado.
func (s *Service) closedSalesInsight(leads []*domain.LeadRecord, now time.Time) *domain.ActionInsight {
	count := 0
	total := 0.0
	for _, lead := range leads {
		if lead.Status == domain.LeadStatusWon {
			count++
			total += lead.Value
		}
	}

	if count == 0 {
		return nil
	}

	return &domain.ActionInsight{
		Category:     domain.InsightSales,
		Priority:     domain.PriorityMedium,
		Title:        "Vendas fechadas",
		Description:  fmt.Sprintf("%d negócios ganhos somando %s.", count, formatCurrency(total)),
		Metric:       formatCurrency(total),
		ActionLabel:  "Ver vendas",
		ActionTarget: "/leads?status=won",
		GeneratedAt:  now,
	}
}

// pipelineSalesInsight soma o valor estimado dos leads ainda em andamento
func (s *Service) pipelineSalesInsight(
	leads []*domain.LeadRecord,
	actions []*domain.ActionLogEntry,
	now time.Time,
) *domain.ActionInsight {
	count := 0
	total := 0.0
	for _, lead := range leads {
		if !lead.IsOpen() {
			continue
		}

		if IsActive(lead.ID, domain.InsightSales, actions) {
			count++
			total += lead.Value
		}
	}

	if count == 0 {
		return nil
	}

	return &domain.ActionInsight{
		Category:     domain.InsightSales,
		Priority:     domain.PriorityMedium,
		Title:        "Pipeline de vendas em aberto",
		Description:  fmt.Sprintf("%d leads em andamento somando %s em valor estimado.", count, formatCurrency(total)),
		Metric:       formatCurrency(total),
		ActionLabel:  "Ver leads",
		ActionTarget: "/leads?open=true",
		GeneratedAt:  now,
	}
}

// recoveryInsight conta clientes neutros que podem virar promotores
func (s *Service) recoveryInsight(
	responses []*domain.FeedbackResponse,
	actions []*domain.ActionLogEntry,
	now time.Time,
) *domain.ActionInsight {
	count := 0
	for _, response := range responses {
		category, err := scoring.Classify(response.Score)
		if err != nil || category != domain.CategoryNeutral {
			continue
		}

		entityID := domain.NormalizeCustomerEmail(response.CustomerEmail)
		if IsActive(entityID, domain.InsightRecovery, actions) {
			count++
		}
	}

	if count == 0 {
		return nil
	}

	return &domain.ActionInsight{
		Category:     domain.InsightRecovery,
		Priority:     domain.PriorityMedium,
		Title:        "Clientes neutros para reconquistar",
		Description:  fmt.Sprintf("%d clientes deram nota 7 ou 8. Um contato bem feito pode convertê-los em promotores.", count),
		Metric:       fmt.Sprintf("%d clientes", count),
		ActionLabel:  "Ver clientes",
		ActionTarget: "/journeys?status=neutral",
		GeneratedAt:  now,
	}
}

func priorityRank(p domain.InsightPriority) int {
	switch p {
	case domain.PriorityHigh:
		return 0
	case domain.PriorityMedium:
		return 1
	default:
		return 2
	}
}

// formatCurrency formata um valor em reais no padrão brasileiro (R$ 1.234,56)
func formatCurrency(value float64) string {
	formatted := strconv.FormatFloat(value, 'f', 2, 64)

	parts := strings.SplitN(formatted, ".", 2)
	integer, decimal := parts[0], parts[1]

	var builder strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			builder.WriteRune('.')
		}
		builder.WriteRune(digit)
	}

	return fmt.Sprintf("R$ %s,%s", builder.String(), decimal)
}
