package journeying

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService() *Service {
	return &Service{Now: func() time.Time { return testNow }}
}

func TestBuildJourneys_SemRespostas(t *testing.T) {
	service := newTestService()

	journeys := service.BuildJourneys(nil, nil)

	assert.Empty(t, journeys)
}

func TestBuildJourneys_ConsolidacaoDeUmCliente(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{
		{
			ID:            "resp1",
			CustomerEmail: "a@x.com",
			CustomerName:  "Ana",
			Score:         10,
			Date:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "resp2",
			CustomerEmail: "a@x.com",
			CustomerName:  "Ana Souza",
			Score:         4,
			Date:          time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	journeys := service.BuildJourneys(responses, nil)

	assert.Len(t, journeys, 1)
	journey := journeys[0]

	assert.Equal(t, "a@x.com", journey.CustomerEmail)
	assert.Equal(t, 7.0, journey.AverageScore)
	assert.Equal(t, domain.CategoryDetractor, journey.CurrentStatus)
	assert.Equal(t, domain.TrendDeclining, journey.Trend)
	assert.NotNil(t, journey.PreviousStatus)
	assert.Equal(t, domain.CategoryPromoter, *journey.PreviousStatus)
	assert.True(t, journey.NeedsAttention)
	// O nome exibido vem da resposta mais recente por data
	assert.Equal(t, "Ana Souza", journey.CustomerName)
}

func TestBuildJourneys_UltimaRespostaPorDataENaoPorInsercao(t *testing.T) {
	service := newTestService()

	// Inseridas fora de ordem: a resposta com data mais recente deve
	// prevalecer mesmo vindo primeiro no array
	responses := []*domain.FeedbackResponse{
		{
			CustomerEmail: "b@x.com",
			CustomerName:  "Bruno Atual",
			Score:         9,
			Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			CustomerEmail: "b@x.com",
			CustomerName:  "Bruno Antigo",
			Score:         5,
			Date:          time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	journeys := service.BuildJourneys(responses, nil)

	assert.Len(t, journeys, 1)
	assert.Equal(t, "Bruno Atual", journeys[0].CustomerName)
	assert.Equal(t, domain.CategoryPromoter, journeys[0].CurrentStatus)
	assert.Equal(t, domain.TrendImproving, journeys[0].Trend)
}

func TestBuildJourneys_NormalizacaoDeEmail(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{
		{CustomerEmail: "  Cliente@Example.COM ", Score: 8, Date: testNow.AddDate(0, 0, -2)},
		{CustomerEmail: "cliente@example.com", Score: 9, Date: testNow.AddDate(0, 0, -1)},
	}

	journeys := service.BuildJourneys(responses, nil)

	assert.Len(t, journeys, 1)
	assert.Equal(t, "cliente@example.com", journeys[0].CustomerEmail)
	assert.Len(t, journeys[0].Responses, 2)
}

func TestBuildJourneys_EmailEmBrancoCaiNoBaldeExplicito(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{
		{CustomerEmail: "", Score: 8, Date: testNow.AddDate(0, 0, -1)},
		{CustomerEmail: "   ", Score: 9, Date: testNow.AddDate(0, 0, -2)},
	}

	journeys := service.BuildJourneys(responses, nil)

	assert.Len(t, journeys, 1)
	assert.Equal(t, domain.UnidentifiedCustomerKey, journeys[0].CustomerEmail)
}

func TestBuildJourneys_DiasSemContatoUsaAcaoMaisRecente(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{
		{CustomerEmail: "c@x.com", Score: 9, Date: testNow.AddDate(0, 0, -30)},
	}

	// A ação mais recente está no meio do array: a seleção é por timestamp
	actions := []*domain.ActionLogEntry{
		{ClientID: "c@x.com", Category: domain.InsightOpportunity, Kind: domain.ActionContact, CreatedAt: testNow.AddDate(0, 0, -20)},
		{ClientID: "c@x.com", Category: domain.InsightOpportunity, Kind: domain.ActionFollowup, CreatedAt: testNow.AddDate(0, 0, -3)},
		{ClientID: "c@x.com", Category: domain.InsightOpportunity, Kind: domain.ActionNote, CreatedAt: testNow.AddDate(0, 0, -10)},
	}

	journeys := service.BuildJourneys(responses, actions)

	assert.Len(t, journeys, 1)
	assert.Equal(t, 3, journeys[0].DaysSinceLastContact)
	assert.Len(t, journeys[0].Actions, 3)
}

func TestBuildJourneys_SemAcoesUsaDataDaUltimaResposta(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{
		{CustomerEmail: "d@x.com", Score: 9, Date: testNow.AddDate(0, 0, -12)},
	}

	journeys := service.BuildJourneys(responses, nil)

	assert.Equal(t, 12, journeys[0].DaysSinceLastContact)
}

func TestBuildJourneys_SinalizacaoDeAtencao(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name     string
		scores   []int
		daysAgo  int
		actions  []*domain.ActionLogEntry
		expected bool
	}{
		{
			name:    "Detrator sem contato há 10 dias precisa de atenção",
			scores:  []int{3},
			daysAgo: 10,
			actions: []*domain.ActionLogEntry{
				{ClientID: "e@x.com", Category: domain.InsightRisk, Kind: domain.ActionContact, CreatedAt: testNow.AddDate(0, 0, -10)},
			},
			expected: true,
		},
		{
			name:     "Tendência em queda precisa de atenção mesmo com contato recente",
			scores:   []int{9, 4},
			daysAgo:  0,
			actions:  []*domain.ActionLogEntry{{ClientID: "e@x.com", Category: domain.InsightRisk, Kind: domain.ActionContact, CreatedAt: testNow}},
			expected: true,
		},
		{
			name:     "Detrator sem nenhuma ação precisa de atenção imediata",
			scores:   []int{5},
			daysAgo:  0,
			actions:  nil,
			expected: true,
		},
		{
			name:    "Detrator contatado há pouco e sem queda não precisa de atenção",
			scores:  []int{5},
			daysAgo: 2,
			actions: []*domain.ActionLogEntry{
				{ClientID: "e@x.com", Category: domain.InsightRisk, Kind: domain.ActionContact, CreatedAt: testNow.AddDate(0, 0, -2)},
			},
			expected: false,
		},
		{
			name:     "Promotor estável não precisa de atenção",
			scores:   []int{9, 10},
			daysAgo:  30,
			actions:  nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := make([]*domain.FeedbackResponse, 0, len(tt.scores))
			for i, score := range tt.scores {
				responses = append(responses, &domain.FeedbackResponse{
					CustomerEmail: "e@x.com",
					Score:         score,
					Date:          testNow.AddDate(0, 0, -len(tt.scores)+i),
				})
			}

			journeys := service.BuildJourneys(responses, tt.actions)

			assert.Len(t, journeys, 1)
			assert.Equal(t, tt.expected, journeys[0].NeedsAttention)
		})
	}
}

func TestBuildJourneys_OrdenacaoPorAtencaoEDepoisPorData(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{
		// Promotor recente, sem atenção
		{CustomerEmail: "tranquilo@x.com", Score: 10, Date: testNow.AddDate(0, 0, -1)},
		// Detrator sem ações, atenção, resposta antiga
		{CustomerEmail: "antigo@x.com", Score: 2, Date: testNow.AddDate(0, 0, -20)},
		// Detrator sem ações, atenção, resposta recente
		{CustomerEmail: "recente@x.com", Score: 3, Date: testNow.AddDate(0, 0, -2)},
		// Promotor antigo, sem atenção
		{CustomerEmail: "sumido@x.com", Score: 9, Date: testNow.AddDate(0, 0, -40)},
	}

	journeys := service.BuildJourneys(responses, nil)

	assert.Len(t, journeys, 4)

	// Quem precisa de atenção vem primeiro, mais recente na frente
	assert.Equal(t, "recente@x.com", journeys[0].CustomerEmail)
	assert.Equal(t, "antigo@x.com", journeys[1].CustomerEmail)
	assert.Equal(t, "tranquilo@x.com", journeys[2].CustomerEmail)
	assert.Equal(t, "sumido@x.com", journeys[3].CustomerEmail)

	for i := 1; i < len(journeys); i++ {
		if journeys[i].NeedsAttention {
			assert.True(t, journeys[i-1].NeedsAttention, "jornadas com atenção devem vir antes das demais")
		}
	}
}

func TestBuildJourneys_MediaComUmaCasaDecimal(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{
		{CustomerEmail: "f@x.com", Score: 10, Date: testNow.AddDate(0, 0, -3)},
		{CustomerEmail: "f@x.com", Score: 9, Date: testNow.AddDate(0, 0, -2)},
		{CustomerEmail: "f@x.com", Score: 9, Date: testNow.AddDate(0, 0, -1)},
	}

	journeys := service.BuildJourneys(responses, nil)

	// 28/3 = 9.333... arredonda para 9.3
	assert.Equal(t, 9.3, journeys[0].AverageScore)
}

func TestBuildJourneys_AcoesAnexadasPorEmailNormalizado(t *testing.T) {
	service := newTestService()

	responses := []*domain.FeedbackResponse{
		{CustomerEmail: "G@X.com", Score: 5, Date: testNow.AddDate(0, 0, -5)},
	}

	actions := []*domain.ActionLogEntry{
		{ClientID: " g@x.com ", Category: domain.InsightRisk, Kind: domain.ActionContact, CreatedAt: testNow.AddDate(0, 0, -1)},
	}

	journeys := service.BuildJourneys(responses, actions)

	assert.Len(t, journeys, 1)
	assert.Len(t, journeys[0].Actions, 1)
	assert.Equal(t, 1, journeys[0].DaysSinceLastContact)
	// Detrator com ação recente e sem queda: não precisa de atenção
	assert.False(t, journeys[0].NeedsAttention)
}
