// Package scoring contém a classificação de notas e o cálculo do índice
// agregado de satisfação. Todas as funções são puras: recebem coleções
// imutáveis e nunca guardam estado entre chamadas.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/vfg2006/customer-pulse-api/internal/domain"
)

// ErrInvalidScore indica uma nota fora do intervalo aceito de 0 a 10.
// Notas inválidas devem ser rejeitadas na ingestão, antes de chegarem
// a qualquer agregação.
var ErrInvalidScore = errors.New("nota fora do intervalo permitido (0 a 10)")

// Classify converte uma nota de 0 a 10 na categoria NPS correspondente
func Classify(score int) (domain.NPSCategory, error) {
	if score < 0 || score > 10 {
		return "", fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}

	switch {
	case score >= 9:
		return domain.CategoryPromoter, nil
	case score >= 7:
		return domain.CategoryNeutral, nil
	default:
		return domain.CategoryDetractor, nil
	}
}

// AggregateIndex calcula o índice agregado de satisfação no estilo NPS:
// percentual de promotores menos percentual de detratores, arredondado para
// o inteiro mais próximo. O resultado é limitado ao intervalo 0 a 100; um
// conjunto vazio de respostas resulta em 0.
func AggregateIndex(responses []*domain.FeedbackResponse) int {
	return Summarize(responses).Index
}

// Summarize conta as respostas por categoria e calcula o índice agregado
func Summarize(responses []*domain.FeedbackResponse) domain.SatisfactionSummary {
	summary := domain.SatisfactionSummary{}

	for _, response := range responses {
		category, err := Classify(response.Score)
		if err != nil {
			// Notas inválidas são barradas na ingestão; se alguma chegar
			// até aqui, não entra na contagem
			continue
		}

		summary.Total++
		switch category {
		case domain.CategoryPromoter:
			summary.Promoters++
		case domain.CategoryNeutral:
			summary.Neutrals++
		case domain.CategoryDetractor:
			summary.Detractors++
		}
	}

	if summary.Total == 0 {
		return summary
	}

	// math.Round arredonda empates para longe do zero
	raw := int(math.Round(float64(summary.Promoters-summary.Detractors) / float64(summary.Total) * 100))
	if raw < 0 {
		// O formato convencional permite índices negativos (-100 a 100);
		// o piso em zero é comportamento mantido por compatibilidade
		raw = 0
	}

	summary.Index = raw
	return summary
}
