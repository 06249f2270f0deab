package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/customer-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/pkg/utils"
)

const (
	feedbackResponsesTable = "feedback_responses fr"
)

type FeedbackRepository interface {
	Create(response *domain.FeedbackResponse) (*domain.FeedbackResponse, error)
	AppendNote(responseID string, note domain.NoteEntry) error
	List() ([]*domain.FeedbackResponse, error)
	ListByPeriod(startDate, endDate time.Time) ([]*domain.FeedbackResponse, error)
}

type feedbackRepository struct {
	conn *postgres.Connection
}

func NewFeedbackRepository(conn *postgres.Connection) FeedbackRepository {
	return &feedbackRepository{
		conn: conn,
	}
}

func (r *feedbackRepository) Create(response *domain.FeedbackResponse) (*domain.FeedbackResponse, error) {
	if response.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar ID da resposta: %w", err)
		}
		response.ID = id
	}

	notesJSON, err := json.Marshal(response.Notes)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar notas para JSON: %w", err)
	}

	answersJSON, err := json.Marshal(response.Answers)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar respostas do formulário para JSON: %w", err)
	}

	query, args, err := squirrel.
		Insert("feedback_responses").
		Columns("id", "customer_email", "customer_name", "customer_phone", "score", "comment", "date", "campaign", "notes", "answers").
		Values(
			response.ID,
			response.CustomerEmail,
			response.CustomerName,
			response.CustomerPhone,
			response.Score,
			response.Comment,
			response.Date,
			response.Campaign,
			notesJSON,
			answersJSON,
		).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&response.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return response, nil
}

// AppendNote acrescenta uma anotação datada à resposta. As notas existentes
// nunca são alteradas: a coluna só cresce.
func (r *feedbackRepository) AppendNote(responseID string, note domain.NoteEntry) error {
	noteJSON, err := json.Marshal([]domain.NoteEntry{note})
	if err != nil {
		return fmt.Errorf("erro ao serializar nota para JSON: %w", err)
	}

	query, args, err := squirrel.
		Update("feedback_responses").
		Set("notes", squirrel.Expr("notes || ?::jsonb", noteJSON)).
		Where(squirrel.Eq{"id": responseID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("resposta não encontrada: %s", responseID)
	}

	return nil
}

func (r *feedbackRepository) List() ([]*domain.FeedbackResponse, error) {
	return r.list(squirrel.
		Select("fr.id, fr.customer_email, fr.customer_name, fr.customer_phone, fr.score, fr.comment, fr.date, fr.campaign, fr.notes, fr.answers, fr.created_at").
		From(feedbackResponsesTable).
		OrderBy("fr.date ASC"))
}

func (r *feedbackRepository) ListByPeriod(startDate, endDate time.Time) ([]*domain.FeedbackResponse, error) {
	return r.list(squirrel.
		Select("fr.id, fr.customer_email, fr.customer_name, fr.customer_phone, fr.score, fr.comment, fr.date, fr.campaign, fr.notes, fr.answers, fr.created_at").
		From(feedbackResponsesTable).
		Where(squirrel.GtOrEq{"fr.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"fr.date": endDate.Format(time.DateOnly)}).
		OrderBy("fr.date ASC"))
}

func (r *feedbackRepository) list(builder squirrel.SelectBuilder) ([]*domain.FeedbackResponse, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.FeedbackResponse{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	responses := make([]*domain.FeedbackResponse, 0)
	for rows.Next() {
		response, err := scanFeedbackResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear resposta: %w", err)
		}
		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return responses, nil
}

func scanFeedbackResponse(rows *sql.Rows) (*domain.FeedbackResponse, error) {
	var response domain.FeedbackResponse
	var notesJSON, answersJSON []byte

	err := rows.Scan(
		&response.ID,
		&response.CustomerEmail,
		&response.CustomerName,
		&response.CustomerPhone,
		&response.Score,
		&response.Comment,
		&response.Date,
		&response.Campaign,
		&notesJSON,
		&answersJSON,
		&response.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(notesJSON) > 0 {
		if err := json.Unmarshal(notesJSON, &response.Notes); err != nil {
			return nil, fmt.Errorf("erro ao desserializar notas: %w", err)
		}
	}

	if len(answersJSON) > 0 {
		if err := json.Unmarshal(answersJSON, &response.Answers); err != nil {
			return nil, fmt.Errorf("erro ao desserializar respostas do formulário: %w", err)
		}
	}

	return &response, nil
}
