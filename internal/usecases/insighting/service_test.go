package insighting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestService() *Service {
	return &Service{Now: func() time.Time { return testNow }}
}

func promoterResponse(email string) *domain.FeedbackResponse {
	return &domain.FeedbackResponse{
		CustomerEmail: email,
		Score:         10,
		Date:          testNow.AddDate(0, 0, -1),
	}
}

func TestGenerateInsights_EntradasVaziasProduzemListaVazia(t *testing.T) {
	service := newTestService()

	insights := service.GenerateInsights(nil, nil, nil)

	assert.Empty(t, insights)
}

func TestGenerateInsights_PrioridadeDeOportunidade(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name             string
		promoters        int
		expectedPriority domain.InsightPriority
	}{
		{name: "Cinco promotores ativos é prioridade alta", promoters: 5, expectedPriority: domain.PriorityHigh},
		{name: "Quatro promotores ativos é prioridade média", promoters: 4, expectedPriority: domain.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := make([]*domain.FeedbackResponse, 0, tt.promoters)
			for i := 0; i < tt.promoters; i++ {
				responses = append(responses, promoterResponse("cliente"+string(rune('a'+i))+"@example.com"))
			}

			insights := service.GenerateInsights(responses, nil, nil)

			opportunities := domain.FilterInsightsByCategory(insights, domain.InsightOpportunity)
			assert.Len(t, opportunities, 1)
			assert.Equal(t, tt.expectedPriority, opportunities[0].Priority)
			assert.Equal(t, testNow, opportunities[0].GeneratedAt)
		})
	}
}

func TestGenerateInsights_DismissedSuprimeApenasACategoria(t *testing.T) {
	service := newTestService()

	// Lead aberto e parado há mais de 7 dias: entra em risco e em pipeline
	lead := &domain.LeadRecord{
		ID:        "lead1",
		Name:      "Cliente Parado",
		Email:     "parado@example.com",
		Status:    domain.LeadStatusNegotiating,
		Value:     3000,
		CreatedAt: testNow.AddDate(0, 0, -15),
	}

	actions := []*domain.ActionLogEntry{
		{ClientID: "lead1", Category: domain.InsightRisk, Kind: domain.ActionDismissed, CreatedAt: testNow.AddDate(0, 0, -1)},
	}

	insights := service.GenerateInsights(nil, []*domain.LeadRecord{lead}, actions)

	// Risco suprimido pelo dismissed
	assert.Empty(t, domain.FilterInsightsByCategory(insights, domain.InsightRisk))

	// A categoria de vendas continua enxergando o mesmo lead
	sales := domain.FilterInsightsByCategory(insights, domain.InsightSales)
	assert.Len(t, sales, 1)
	assert.Contains(t, sales[0].Metric, "3.000,00")
}

func TestGenerateInsights_RiscoCombinaDetratoresELeadsParados(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{
		{CustomerEmail: "triste@example.com", Score: 2, Date: testNow.AddDate(0, 0, -3)},
	}

	leads := []*domain.LeadRecord{
		{ID: "lead1", Status: domain.LeadStatusNew, Value: 1000, CreatedAt: testNow.AddDate(0, 0, -10)},
		{ID: "lead2", Status: domain.LeadStatusWon, Value: 5000, CreatedAt: testNow.AddDate(0, 0, -30)},
		{ID: "lead3", Status: domain.LeadStatusContacted, Value: 500, CreatedAt: testNow.AddDate(0, 0, -2)},
	}

	insights := service.GenerateInsights(responses, leads, nil)

	risks := domain.FilterInsightsByCategory(insights, domain.InsightRisk)
	assert.Len(t, risks, 1)
	// Um detrator ativo + um lead aberto parado (lead ganho e lead recente ficam de fora)
	assert.Equal(t, "2 em risco", risks[0].Metric)
	// Detrator ativo presente torna o risco prioritário
	assert.Equal(t, domain.PriorityHigh, risks[0].Priority)
}

func TestGenerateInsights_RiscoSemDetratorFicaMedio(t *testing.T) {
	service := newTestService()

	leads := []*domain.LeadRecord{
		{ID: "lead1", Status: domain.LeadStatusNew, Value: 1000, CreatedAt: testNow.AddDate(0, 0, -10)},
	}

	insights := service.GenerateInsights(nil, leads, nil)

	risks := domain.FilterInsightsByCategory(insights, domain.InsightRisk)
	assert.Len(t, risks, 1)
	assert.Equal(t, domain.PriorityMedium, risks[0].Priority)
}

func TestGenerateInsights_VendasFechadasIgnoramOLog(t *testing.T) {
	service := newTestService()

	leads := []*domain.LeadRecord{
		{ID: "lead1", Status: domain.LeadStatusWon, Value: 1500.50, CreatedAt: testNow.AddDate(0, 0, -20)},
		{ID: "lead2", Status: domain.LeadStatusWon, Value: 2000, CreatedAt: testNow.AddDate(0, 0, -5)},
	}

	// Mesmo com dismissed na categoria de vendas, negócios ganhos continuam visíveis
	actions := []*domain.ActionLogEntry{
		{ClientID: "lead1", Category: domain.InsightSales, Kind: domain.ActionDismissed, CreatedAt: testNow},
		{ClientID: "lead2", Category: domain.InsightSales, Kind: domain.ActionDismissed, CreatedAt: testNow},
	}

	insights := service.GenerateInsights(nil, leads, actions)

	sales := domain.FilterInsightsByCategory(insights, domain.InsightSales)
	assert.Len(t, sales, 1)
	assert.Equal(t, "R$ 3.500,50", sales[0].Metric)
	assert.Contains(t, sales[0].Description, "2 negócios ganhos")
}

func TestGenerateInsights_RecuperacaoDeNeutros(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{
		{CustomerEmail: "neutro1@example.com", Score: 7, Date: testNow.AddDate(0, 0, -1)},
		{CustomerEmail: "neutro2@example.com", Score: 8, Date: testNow.AddDate(0, 0, -2)},
		{CustomerEmail: "tratado@example.com", Score: 7, Date: testNow.AddDate(0, 0, -3)},
	}

	actions := []*domain.ActionLogEntry{
		{ClientID: "tratado@example.com", Category: domain.InsightRecovery, Kind: domain.ActionCompleted, CreatedAt: testNow},
	}

	insights := service.GenerateInsights(responses, nil, actions)

	recoveries := domain.FilterInsightsByCategory(insights, domain.InsightRecovery)
	assert.Len(t, recoveries, 1)
	assert.Equal(t, "2 clientes", recoveries[0].Metric)
	assert.Equal(t, domain.PriorityMedium, recoveries[0].Priority)
}

func TestGenerateInsights_OrdenadosPorPrioridade(t *testing.T) {
	service := newTestService()

	// Detrator ativo (risco alto) + neutro (recuperação média) + promotor (oportunidade média)
	responses := []*domain.FeedbackResponse{
		{CustomerEmail: "triste@example.com", Score: 1, Date: testNow.AddDate(0, 0, -1)},
		{CustomerEmail: "neutro@example.com", Score: 7, Date: testNow.AddDate(0, 0, -1)},
		{CustomerEmail: "feliz@example.com", Score: 10, Date: testNow.AddDate(0, 0, -1)},
	}

	insights := service.GenerateInsights(responses, nil, nil)

	assert.Len(t, insights, 3)
	assert.Equal(t, domain.InsightRisk, insights[0].Category)
	for i := 1; i < len(insights); i++ {
		assert.NotEqual(t, domain.PriorityHigh, insights[i].Priority)
	}
}

func TestFilterInsightsByCategory_NaoAlteraConteudo(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{promoterResponse("feliz@example.com")}
	insights := service.GenerateInsights(responses, nil, nil)

	filtered := domain.FilterInsightsByCategory(insights, domain.InsightOpportunity)

	assert.Len(t, filtered, 1)
	// Filtrar é pura igualdade sobre a categoria: o ponteiro é o mesmo
	assert.Same(t, insights[0], filtered[0])
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R$ 0,00", formatCurrency(0))
	assert.Equal(t, "R$ 950,00", formatCurrency(950))
	assert.Equal(t, "R$ 1.234,56", formatCurrency(1234.56))
	assert.Equal(t, "R$ 1.234.567,89", formatCurrency(1234567.89))
}
