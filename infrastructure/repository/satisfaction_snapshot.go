package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/customer-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
)

const (
	satisfactionSnapshotsTable = "satisfaction_snapshots ss"
)

type SatisfactionSnapshotRepository interface {
	GetByDate(date time.Time) (*domain.SatisfactionSnapshot, error)
	GetByDateRange(startDate, endDate time.Time) ([]*domain.SatisfactionSnapshot, error)
	GetLatest() (*domain.SatisfactionSnapshot, error)
	SaveOrUpdate(snapshot *domain.SatisfactionSnapshot) error
	DeleteOlderThan(days int) (int64, error)
}

type satisfactionSnapshotRepository struct {
	conn *postgres.Connection
}

func NewSatisfactionSnapshotRepository(conn *postgres.Connection) SatisfactionSnapshotRepository {
	return &satisfactionSnapshotRepository{
		conn: conn,
	}
}

func (r *satisfactionSnapshotRepository) GetByDate(date time.Time) (*domain.SatisfactionSnapshot, error) {
	query, args, err := squirrel.
		Select("ss.id, ss.date, ss.index, ss.promoters, ss.neutrals, ss.detractors, ss.total_responses, ss.journeys_at_risk, ss.created_at, ss.updated_at").
		From(satisfactionSnapshotsTable).
		Where(squirrel.Eq{"ss.date": date.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	snapshot, err := r.scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *satisfactionSnapshotRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.SatisfactionSnapshot, error) {
	query, args, err := squirrel.
		Select("ss.id, ss.date, ss.index, ss.promoters, ss.neutrals, ss.detractors, ss.total_responses, ss.journeys_at_risk, ss.created_at, ss.updated_at").
		From(satisfactionSnapshotsTable).
		Where(squirrel.GtOrEq{"ss.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"ss.date": endDate.Format(time.DateOnly)}).
		OrderBy("ss.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.SatisfactionSnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshotRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshots: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *satisfactionSnapshotRepository) GetLatest() (*domain.SatisfactionSnapshot, error) {
	query, args, err := squirrel.
		Select("ss.id, ss.date, ss.index, ss.promoters, ss.neutrals, ss.detractors, ss.total_responses, ss.journeys_at_risk, ss.created_at, ss.updated_at").
		From(satisfactionSnapshotsTable).
		OrderBy("ss.date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	snapshot, err := r.scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *satisfactionSnapshotRepository) SaveOrUpdate(snapshot *domain.SatisfactionSnapshot) error {
	query := squirrel.StatementBuilder.
		Insert("satisfaction_snapshots").
		Columns("date", "index", "promoters", "neutrals", "detractors", "total_responses", "journeys_at_risk").
		Values(
			snapshot.Date.Format(time.DateOnly),
			snapshot.Index,
			snapshot.Promoters,
			snapshot.Neutrals,
			snapshot.Detractors,
			snapshot.TotalResponses,
			snapshot.JourneysAtRisk,
		).
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				index = EXCLUDED.index,
				promoters = EXCLUDED.promoters,
				neutrals = EXCLUDED.neutrals,
				detractors = EXCLUDED.detractors,
				total_responses = EXCLUDED.total_responses,
				journeys_at_risk = EXCLUDED.journeys_at_risk,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *satisfactionSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("satisfaction_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *satisfactionSnapshotRepository) scanSnapshot(row *sql.Row) (*domain.SatisfactionSnapshot, error) {
	snapshot := &domain.SatisfactionSnapshot{}
	var dateStr string

	err := row.Scan(
		&snapshot.ID,
		&dateStr,
		&snapshot.Index,
		&snapshot.Promoters,
		&snapshot.Neutrals,
		&snapshot.Detractors,
		&snapshot.TotalResponses,
		&snapshot.JourneysAtRisk,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter data: %w", err)
	}
	snapshot.Date = date

	return snapshot, nil
}

func (r *satisfactionSnapshotRepository) scanSnapshotRows(rows *sql.Rows) (*domain.SatisfactionSnapshot, error) {
	snapshot := &domain.SatisfactionSnapshot{}

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.Date,
		&snapshot.Index,
		&snapshot.Promoters,
		&snapshot.Neutrals,
		&snapshot.Detractors,
		&snapshot.TotalResponses,
		&snapshot.JourneysAtRisk,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}
