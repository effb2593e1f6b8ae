package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

var _ repository.StockIssueRepository = (*StockIssueRepo)(nil)

// StockIssueRepo implementación de StockIssueRepository sobre PostgreSQL
// (usable con pool o tx).
type StockIssueRepo struct {
	q Querier
}

// NewStockIssueRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockIssueRepository(q Querier) *StockIssueRepo {
	return &StockIssueRepo{q: q}
}

// Create persiste encabezado y líneas. Number tiene constraint único.
func (r *StockIssueRepo) Create(issue *entity.StockIssue) error {
	if issue.ID == "" {
		issue.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_issues (id, number, warehouse_id, status, reason, last_post_error, posted_by, posted_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		issue.ID, issue.Number, issue.WarehouseID, issue.Status, nullIfEmpty(issue.Reason),
		issue.LastPostError, issue.PostedBy, issue.PostedAt,
		issue.CreatedBy, issue.CreatedAt, issue.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: salida %s", domain.ErrDuplicate, issue.Number)
		}
		return fmt.Errorf("insert stock issue: %w", err)
	}
	return r.saveLines(issue)
}

// GetByID carga encabezado y líneas. Devuelve nil si no existe.
func (r *StockIssueRepo) GetByID(id string) (*entity.StockIssue, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea el encabezado (SELECT FOR UPDATE). El posteo recarga
// con este lock para que dos posteos concurrentes del mismo documento se
// serialicen y el segundo vea el estado ya sellado.
func (r *StockIssueRepo) GetForUpdate(id string) (*entity.StockIssue, error) {
	return r.get(id, true)
}

func (r *StockIssueRepo) get(id string, forUpdate bool) (*entity.StockIssue, error) {
	query := `
		SELECT id, number, warehouse_id, status, COALESCE(reason, ''),
		       last_post_error, posted_by, posted_at, created_by, created_at, updated_at
		FROM stock_issues WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var si entity.StockIssue
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&si.ID, &si.Number, &si.WarehouseID, &si.Status, &si.Reason,
		&si.LastPostError, &si.PostedBy, &si.PostedAt, &si.CreatedBy, &si.CreatedAt, &si.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock issue: %w", err)
	}
	if si.Lines, err = r.loadLines(si.ID); err != nil {
		return nil, err
	}
	return &si, nil
}

func (r *StockIssueRepo) loadLines(issueID string) ([]entity.StockIssueLine, error) {
	query := `
		SELECT id, issue_id, line_no, product_id, from_location_id, batch_id, quantity, status
		FROM stock_issue_lines WHERE issue_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, issueID)
	if err != nil {
		return nil, fmt.Errorf("list stock issue lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.StockIssueLine
	for rows.Next() {
		var l entity.StockIssueLine
		if err := rows.Scan(&l.ID, &l.IssueID, &l.LineNo, &l.ProductID, &l.FromLocationID,
			&l.BatchID, &l.Quantity, &l.Status); err != nil {
			return nil, fmt.Errorf("scan stock issue line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Save persiste encabezado y líneas tal como están en memoria.
func (r *StockIssueRepo) Save(issue *entity.StockIssue) error {
	query := `
		UPDATE stock_issues
		SET status = $2, reason = $3, last_post_error = $4, posted_by = $5, posted_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		issue.ID, issue.Status, nullIfEmpty(issue.Reason), issue.LastPostError,
		issue.PostedBy, issue.PostedAt, issue.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock issue: %w", err)
	}
	return r.saveLines(issue)
}

func (r *StockIssueRepo) saveLines(issue *entity.StockIssue) error {
	query := `
		INSERT INTO stock_issue_lines (id, issue_id, line_no, product_id, from_location_id, batch_id, quantity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status`
	for i := range issue.Lines {
		l := &issue.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.IssueID = issue.ID
		_, err := r.q.Exec(context.Background(), query,
			l.ID, l.IssueID, l.LineNo, l.ProductID, l.FromLocationID, l.BatchID, l.Quantity, l.Status,
		)
		if err != nil {
			return fmt.Errorf("upsert stock issue line: %w", err)
		}
	}
	return nil
}

// SetPostError registra la última falla de posteo (fuera de la tx abortada).
func (r *StockIssueRepo) SetPostError(id, message string) error {
	query := `UPDATE stock_issues SET last_post_error = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, message); err != nil {
		return fmt.Errorf("set stock issue post error: %w", err)
	}
	return nil
}

// ExistsByNumber verifica si ya hay una salida con ese número.
func (r *StockIssueRepo) ExistsByNumber(number string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM stock_issues WHERE number = $1)`
	if err := r.q.QueryRow(context.Background(), query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists stock issue: %w", err)
	}
	return exists, nil
}

// List devuelve encabezados paginados, del más reciente al más antiguo.
func (r *StockIssueRepo) List(limit, offset int) ([]*entity.StockIssue, error) {
	query := `
		SELECT id, number, warehouse_id, status, COALESCE(reason, ''),
		       last_post_error, posted_by, posted_at, created_by, created_at, updated_at
		FROM stock_issues ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock issues: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockIssue
	for rows.Next() {
		var si entity.StockIssue
		if err := rows.Scan(&si.ID, &si.Number, &si.WarehouseID, &si.Status, &si.Reason,
			&si.LastPostError, &si.PostedBy, &si.PostedAt,
			&si.CreatedBy, &si.CreatedAt, &si.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock issue: %w", err)
		}
		list = append(list, &si)
	}
	return list, rows.Err()
}
