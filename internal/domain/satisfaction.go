package domain

import "time"

// SatisfactionSummary é o resultado agregado do índice de satisfação
// calculado sobre um conjunto de respostas
type SatisfactionSummary struct {
	Index      int `json:"index"` // 0 a 100
	Promoters  int `json:"promoters"`
	Neutrals   int `json:"neutrals"`
	Detractors int `json:"detractors"`
	Total      int `json:"total"`
}

// SatisfactionSnapshot é uma fotografia diária do índice de satisfação,
// persistida pelo agendador para compor o histórico
type SatisfactionSnapshot struct {
	ID             int64     `json:"id"`
	Date           time.Time `json:"date"`
	Index          int       `json:"index"`
	Promoters      int       `json:"promoters"`
	Neutrals       int       `json:"neutrals"`
	Detractors     int       `json:"detractors"`
	TotalResponses int       `json:"total_responses"`
	JourneysAtRisk int       `json:"journeys_at_risk"` // Jornadas marcadas como needs_attention
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
