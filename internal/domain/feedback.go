// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// NPSCategory classifica um cliente a partir da nota de satisfação
type NPSCategory string

const (
	CategoryPromoter  NPSCategory = "promoter"  // Nota 9 ou 10
	CategoryNeutral   NPSCategory = "neutral"   // Nota 7 ou 8
	CategoryDetractor NPSCategory = "detractor" // Nota 6 ou menos
)

// NoteEntry é uma anotação datada sobre uma resposta (somente acrescentada, nunca editada)
type NoteEntry struct {
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}

// FeedbackResponse representa uma resposta de pesquisa de satisfação recebida de um cliente
type FeedbackResponse struct {
	ID            string      `json:"id"`
	CustomerEmail string      `json:"customer_email"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone *string     `json:"customer_phone,omitempty"`
	Score         int         `json:"score"` // 0 a 10
	Comment       *string     `json:"comment,omitempty"`
	Date          time.Time   `json:"date"`
	Campaign      string      `json:"campaign"`
	Notes         []NoteEntry `json:"notes,omitempty"`
	Answers       []Answer    `json:"answers,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}
