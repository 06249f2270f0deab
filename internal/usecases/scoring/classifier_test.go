package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		expected domain.NPSCategory
	}{
		{name: "Nota 10 é promotor", score: 10, expected: domain.CategoryPromoter},
		{name: "Nota 9 é promotor", score: 9, expected: domain.CategoryPromoter},
		{name: "Nota 8 é neutro", score: 8, expected: domain.CategoryNeutral},
		{name: "Nota 7 é neutro", score: 7, expected: domain.CategoryNeutral},
		{name: "Nota 6 é detrator", score: 6, expected: domain.CategoryDetractor},
		{name: "Nota 0 é detrator", score: 0, expected: domain.CategoryDetractor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, err := Classify(tt.score)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestClassify_NotaForaDoIntervalo(t *testing.T) {
	for _, score := range []int{-1, 11, 100} {
		_, err := Classify(score)
		assert.ErrorIs(t, err, ErrInvalidScore)
	}
}

func TestAggregateIndex(t *testing.T) {
	tests := []struct {
		name     string
		scores   []int
		expected int
	}{
		{name: "Sem respostas retorna zero", scores: nil, expected: 0},
		{name: "Somente promotores", scores: []int{9, 10, 10}, expected: 100},
		{name: "Somente detratores fica no piso zero", scores: []int{0, 3, 5}, expected: 0},
		{name: "Metade promotores metade neutros", scores: []int{9, 10, 7, 8}, expected: 50},
		{name: "Um promotor um detrator se anulam", scores: []int{10, 2}, expected: 0},
		{name: "Arredondamento para o inteiro mais próximo", scores: []int{9, 9, 7}, expected: 67},
		{name: "Meio ponto arredonda para longe do zero", scores: []int{9, 7, 7, 7, 7, 7, 7, 7}, expected: 13},
		{name: "Mais detratores que promotores fica no piso", scores: []int{10, 1, 2}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := AggregateIndex(makeResponses(tt.scores))
			assert.Equal(t, tt.expected, index)
			assert.GreaterOrEqual(t, index, 0)
			assert.LessOrEqual(t, index, 100)
		})
	}
}

func TestSummarize_ContagemPorCategoria(t *testing.T) {
	summary := Summarize(makeResponses([]int{10, 9, 8, 7, 6, 0}))

	assert.Equal(t, 2, summary.Promoters)
	assert.Equal(t, 2, summary.Neutrals)
	assert.Equal(t, 2, summary.Detractors)
	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 0, summary.Index)
}

func makeResponses(scores []int) []*domain.FeedbackResponse {
	responses := make([]*domain.FeedbackResponse, 0, len(scores))
	for i, score := range scores {
		responses = append(responses, &domain.FeedbackResponse{
			ID:            "resp" + string(rune('A'+i)),
			CustomerEmail: "cliente@example.com",
			Score:         score,
			Date:          time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}
	return responses
}
