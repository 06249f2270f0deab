package domain

import "time"

// LeadStatus representa o estágio do lead no funil de vendas
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusNegotiating LeadStatus = "negotiating"
	LeadStatusWon         LeadStatus = "won"
	LeadStatusLost        LeadStatus = "lost"
)

// ValidLeadStatus verifica se o status informado é um estágio conhecido do funil
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusNegotiating, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

// LeadRecord representa um lead no pipeline de vendas
type LeadRecord struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	Status    LeadStatus `json:"status"`
	Value     float64    `json:"value"` // Valor estimado em reais, nunca negativo
	CreatedAt time.Time  `json:"created_at"`
	Source    string     `json:"source"`
	Answers   []Answer   `json:"answers,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsOpen indica se o lead ainda está em andamento no funil
func (l *LeadRecord) IsOpen() bool {
	return l.Status != LeadStatusWon && l.Status != LeadStatusLost
}
