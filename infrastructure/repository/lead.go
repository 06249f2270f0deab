package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/customer-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/pkg/utils"
)

const (
	leadsTable = "leads l"
)

type LeadRepository interface {
	Create(lead *domain.LeadRecord) (*domain.LeadRecord, error)
	GetByID(id string) (*domain.LeadRecord, error)
	List() ([]*domain.LeadRecord, error)
	UpdateStatus(id string, status domain.LeadStatus) error
	UpdateValue(id string, value float64) error
}

type leadRepository struct {
	conn *postgres.Connection
}

func NewLeadRepository(conn *postgres.Connection) LeadRepository {
	return &leadRepository{
		conn: conn,
	}
}

func (r *leadRepository) Create(lead *domain.LeadRecord) (*domain.LeadRecord, error) {
	if lead.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar ID do lead: %w", err)
		}
		lead.ID = id
	}

	answersJSON, err := json.Marshal(lead.Answers)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar respostas do formulário para JSON: %w", err)
	}

	query, args, err := squirrel.
		Insert("leads").
		Columns("id", "name", "email", "phone", "status", "value", "source", "answers", "created_at").
		Values(
			lead.ID,
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Status,
			lead.Value,
			lead.Source,
			answersJSON,
			lead.CreatedAt,
		).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&lead.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return lead, nil
}

func (r *leadRepository) GetByID(id string) (*domain.LeadRecord, error) {
	query, args, err := squirrel.
		Select("l.id, l.name, l.email, l.phone, l.status, l.value, l.source, l.answers, l.created_at, l.updated_at").
		From(leadsTable).
		Where(squirrel.Eq{"l.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	return scanLead(rows)
}

func (r *leadRepository) List() ([]*domain.LeadRecord, error) {
	query, args, err := squirrel.
		Select("l.id, l.name, l.email, l.phone, l.status, l.value, l.source, l.answers, l.created_at, l.updated_at").
		From(leadsTable).
		OrderBy("l.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.LeadRecord{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	leads := make([]*domain.LeadRecord, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear lead: %w", err)
		}
		leads = append(leads, lead)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return leads, nil
}

func (r *leadRepository) UpdateStatus(id string, status domain.LeadStatus) error {
	return r.update(id, squirrel.
		Update("leads").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

func (r *leadRepository) UpdateValue(id string, value float64) error {
	return r.update(id, squirrel.
		Update("leads").
		Set("value", value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

func (r *leadRepository) update(id string, builder squirrel.UpdateBuilder) error {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("lead não encontrado: %s", id)
	}

	return nil
}

func scanLead(rows *sql.Rows) (*domain.LeadRecord, error) {
	var lead domain.LeadRecord
	var answersJSON []byte

	err := rows.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Status,
		&lead.Value,
		&lead.Source,
		&answersJSON,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(answersJSON) > 0 {
		if err := json.Unmarshal(answersJSON, &lead.Answers); err != nil {
			return nil, fmt.Errorf("erro ao desserializar respostas do formulário: %w", err)
		}
	}

	return &lead, nil
}
