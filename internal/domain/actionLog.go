package domain

import "time"

// InsightCategory identifica a categoria de insight à qual uma ação se refere
type InsightCategory string

const (
	InsightOpportunity InsightCategory = "opportunity"
	InsightRisk        InsightCategory = "risk"
	InsightSales       InsightCategory = "sales"
	InsightRecovery    InsightCategory = "recovery"
)

// ValidInsightCategory verifica se a categoria informada é conhecida
func ValidInsightCategory(c InsightCategory) bool {
	switch c {
	case InsightOpportunity, InsightRisk, InsightSales, InsightRecovery:
		return true
	}
	return false
}

// ActionKind representa o tipo de ação registrada para um cliente
type ActionKind string

const (
	ActionContact    ActionKind = "contact"
	ActionOffer      ActionKind = "offer"
	ActionResolution ActionKind = "resolution"
	ActionFollowup   ActionKind = "followup"
	ActionNote       ActionKind = "note"
	ActionCompleted  ActionKind = "completed"
	ActionDismissed  ActionKind = "dismissed"
)

// ValidActionKind verifica se o tipo de ação informado é conhecido
func ValidActionKind(k ActionKind) bool {
	switch k {
	case ActionContact, ActionOffer, ActionResolution, ActionFollowup,
		ActionNote, ActionCompleted, ActionDismissed:
		return true
	}
	return false
}

// IsClosing indica se a ação encerra o par (cliente, categoria) no log,
// fazendo com que o insight correspondente pare de ser exibido
func (k ActionKind) IsClosing() bool {
	return k == ActionCompleted || k == ActionDismissed
}

// ActionLogEntry é um registro imutável de uma ação tomada sobre um cliente.
// O log é apenas de acréscimo: entradas nunca são alteradas ou removidas.
type ActionLogEntry struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"client_id"` // Email normalizado do cliente ou ID do lead
	Category  InsightCategory `json:"category"`
	Kind      ActionKind      `json:"kind"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
