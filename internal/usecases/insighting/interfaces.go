package insighting

import (
	"github.com/vfg2006/customer-pulse-api/internal/domain"
)

// Insighter define a interface para geração de insights acionáveis a partir
// das respostas, dos leads e do log de ações
type Insighter interface {
	// GenerateInsights recalcula a lista completa de insights a partir dos
	// dados informados. O resultado vem ordenado por prioridade.
	GenerateInsights(
		responses []*domain.FeedbackResponse,
		leads []*domain.LeadRecord,
		actions []*domain.ActionLogEntry,
	) []*domain.ActionInsight
}
