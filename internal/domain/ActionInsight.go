package domain

import "time"

// InsightPriority indica a urgência de um insight gerado
type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// ActionInsight é uma recomendação gerada a partir dos dados agregados de
// respostas e leads. É derivado, nunca persistido.
type ActionInsight struct {
	Category     InsightCategory `json:"category"`
	Priority     InsightPriority `json:"priority"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Metric       string          `json:"metric"`
	ActionLabel  string          `json:"action_label"`
	ActionTarget string          `json:"action_target"` // Dica de roteamento para o painel
	GeneratedAt  time.Time       `json:"generated_at"`
}

// FilterInsightsByCategory filtra a lista por categoria sem regenerar ou
// alterar o conteúdo dos insights
func FilterInsightsByCategory(insights []*ActionInsight, category InsightCategory) []*ActionInsight {
	filtered := make([]*ActionInsight, 0, len(insights))
	for _, insight := range insights {
		if insight.Category == category {
			filtered = append(filtered, insight)
		}
	}
	return filtered
}
