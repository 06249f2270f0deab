package insighting

import (
	"github.com/vfg2006/customer-pulse-api/internal/domain"
)

// IsActive determina se um par (cliente, categoria) ainda deve gerar insight.
// O par fica inativo apenas quando a entrada MAIS RECENTE do log para esse
// par tem uma ação de encerramento (completed ou dismissed). A seleção é
// sempre pelo maior timestamp, nunca pela posição no array, para que o
// resultado não dependa da ordem em que o log foi carregado.
//
// Com log vazio ou indisponível todo cliente é considerado ativo (fail-open):
// a ausência de dados do log nunca pode esconder um insight.
func IsActive(entityID string, category domain.InsightCategory, log []*domain.ActionLogEntry) bool {
	var latest *domain.ActionLogEntry

	for _, entry := range log {
		if entry == nil || entry.ClientID != entityID || entry.Category != category {
			continue
		}
		if latest == nil || entry.CreatedAt.After(latest.CreatedAt) {
			latest = entry
		}
	}

	if latest == nil {
		return true
	}

	return !latest.Kind.IsClosing()
}
