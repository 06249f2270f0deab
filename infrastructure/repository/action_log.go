package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/customer-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/pkg/utils"
)

const (
	actionLogTable = "action_log a"
)

// ActionLogRepository expõe apenas escrita por acréscimo. Entradas do
// histórico de ações nunca são alteradas ou removidas.
type ActionLogRepository interface {
	Append(entry *domain.ActionLogEntry) (*domain.ActionLogEntry, error)
	List() ([]*domain.ActionLogEntry, error)
	ListByClient(clientID string) ([]*domain.ActionLogEntry, error)
}

type actionLogRepository struct {
	conn *postgres.Connection
}

func NewActionLogRepository(conn *postgres.Connection) ActionLogRepository {
	return &actionLogRepository{
		conn: conn,
	}
}

func (r *actionLogRepository) Append(entry *domain.ActionLogEntry) (*domain.ActionLogEntry, error) {
	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar ID da ação: %w", err)
		}
		entry.ID = id
	}

	query, args, err := squirrel.
		Insert("action_log").
		Columns("id", "client_id", "category", "kind", "notes", "created_at").
		Values(
			entry.ID,
			entry.ClientID,
			entry.Category,
			entry.Kind,
			entry.Notes,
			entry.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return entry, nil
}

func (r *actionLogRepository) List() ([]*domain.ActionLogEntry, error) {
	builder := squirrel.
		Select("a.id, a.client_id, a.category, a.kind, a.notes, a.created_at").
		From(actionLogTable).
		OrderBy("a.created_at ASC")

	return r.list(builder)
}

func (r *actionLogRepository) ListByClient(clientID string) ([]*domain.ActionLogEntry, error) {
	builder := squirrel.
		Select("a.id, a.client_id, a.category, a.kind, a.notes, a.created_at").
		From(actionLogTable).
		Where(squirrel.Eq{"a.client_id": clientID}).
		OrderBy("a.created_at ASC")

	return r.list(builder)
}

func (r *actionLogRepository) list(builder squirrel.SelectBuilder) ([]*domain.ActionLogEntry, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.ActionLogEntry{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.ActionLogEntry, 0)
	for rows.Next() {
		var entry domain.ActionLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ClientID,
			&entry.Category,
			&entry.Kind,
			&entry.Notes,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear ação: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}
