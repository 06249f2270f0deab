package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
)

func TestDetectTrend(t *testing.T) {
	tests := []struct {
		name             string
		scores           []int
		expectedTrend    domain.Trend
		expectedPrevious *domain.NPSCategory
	}{
		{
			name:          "Sem respostas é estável",
			scores:        nil,
			expectedTrend: domain.TrendStable,
		},
		{
			name:          "Uma única resposta é estável sem categoria anterior",
			scores:        []int{4},
			expectedTrend: domain.TrendStable,
		},
		{
			name:             "Subida de 5 para 8 é melhora vindo de detrator",
			scores:           []int{5, 8},
			expectedTrend:    domain.TrendImproving,
			expectedPrevious: categoryPtr(domain.CategoryDetractor),
		},
		{
			name:             "Queda de 10 para 4 é piora vindo de promotor",
			scores:           []int{10, 4},
			expectedTrend:    domain.TrendDeclining,
			expectedPrevious: categoryPtr(domain.CategoryPromoter),
		},
		{
			name:          "Queda de 8 para 7 fica na banda morta mesmo cruzando categoria",
			scores:        []int{8, 7},
			expectedTrend: domain.TrendStable,
		},
		{
			name:          "Variação de exatamente 1 ponto é estável",
			scores:        []int{6, 7},
			expectedTrend: domain.TrendStable,
		},
		{
			name:             "Variação de exatamente 2 pontos já conta como melhora",
			scores:           []int{6, 8},
			expectedTrend:    domain.TrendImproving,
			expectedPrevious: categoryPtr(domain.CategoryDetractor),
		},
		{
			name:             "Somente as duas respostas mais recentes importam",
			scores:           []int{10, 3, 9},
			expectedTrend:    domain.TrendImproving,
			expectedPrevious: categoryPtr(domain.CategoryDetractor),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend, previous := DetectTrend(makeResponses(tt.scores))

			assert.Equal(t, tt.expectedTrend, trend)
			if tt.expectedPrevious == nil {
				assert.Nil(t, previous)
			} else {
				assert.NotNil(t, previous)
				assert.Equal(t, *tt.expectedPrevious, *previous)
			}
		})
	}
}

func categoryPtr(c domain.NPSCategory) *domain.NPSCategory {
	return &c
}

func TestDetectTrend_RespostasOrdenadasPorData(t *testing.T) {
	// A detecção assume a lista ordenada por data crescente, como o
	// agregador de jornadas entrega
	responses := []*domain.FeedbackResponse{
		{Score: 9, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Score: 4, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	trend, previous := DetectTrend(responses)

	assert.Equal(t, domain.TrendDeclining, trend)
	assert.NotNil(t, previous)
	assert.Equal(t, domain.CategoryPromoter, *previous)
}
