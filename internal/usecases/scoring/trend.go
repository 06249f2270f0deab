package scoring

import (
	"github.com/vfg2006/customer-pulse-api/internal/domain"
)

// Variação mínima de nota entre as duas respostas mais recentes para que a
// tendência saia de "stable". Variações menores ficam na banda morta, mesmo
// quando cruzam uma fronteira de categoria (ex.: 8 para 7).
const trendThreshold = 2

// DetectTrend deriva a tendência de evolução de um cliente a partir das suas
// respostas ordenadas por data crescente. Retorna também a categoria anterior
// quando a tendência não é estável.
func DetectTrend(responses []*domain.FeedbackResponse) (domain.Trend, *domain.NPSCategory) {
	if len(responses) < 2 {
		return domain.TrendStable, nil
	}

	newer := responses[len(responses)-1]
	older := responses[len(responses)-2]
	delta := newer.Score - older.Score

	if delta >= trendThreshold || delta <= -trendThreshold {
		trend := domain.TrendImproving
		if delta < 0 {
			trend = domain.TrendDeclining
		}

		var previous *domain.NPSCategory
		if category, err := Classify(older.Score); err == nil {
			previous = &category
		}

		return trend, previous
	}

	return domain.TrendStable, nil
}
