package domain

import "time"

// Trend representa a evolução da satisfação do cliente entre as duas respostas mais recentes
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// UnidentifiedCustomerKey agrupa respostas sem email em um balde explícito,
// para que o chamador possa excluí-las de análises por cliente
const UnidentifiedCustomerKey = "unidentified"

// CustomerJourney é a visão consolidada de um cliente, derivada das respostas
// e do log de ações. Nunca é persistida: é recalculada a cada consulta.
type CustomerJourney struct {
	CustomerEmail        string              `json:"customer_email"`
	CustomerName         string              `json:"customer_name"`
	CustomerPhone        *string             `json:"customer_phone,omitempty"`
	Responses            []*FeedbackResponse `json:"responses"`
	Actions              []*ActionLogEntry   `json:"actions"`
	AverageScore         float64             `json:"average_score"` // Média com uma casa decimal
	CurrentStatus        NPSCategory         `json:"current_status"`
	PreviousStatus       *NPSCategory        `json:"previous_status,omitempty"`
	Trend                Trend               `json:"trend"`
	DaysSinceLastContact int                 `json:"days_since_last_contact"`
	NeedsAttention       bool                `json:"needs_attention"`
	LastResponseAt       time.Time           `json:"last_response_at"`
}
