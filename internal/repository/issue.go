package repository

import (
	"database/sql"
	"fmt"

	"wholesale/internal/models"
)

type IssueRepository struct {
	db *sql.DB
}

func NewIssueRepository(db *sql.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) CreateIssue(i *models.QualityIssue) error {
	_, err := r.db.Exec(`INSERT INTO quality_issues (id, order_id, issue_type, description, reported_at)
		VALUES ($1,$2,$3,$4,$5)`,
		i.ID, i.OrderID, i.IssueType, i.Description, i.ReportedAt,
	)
	if err != nil {
		return fmt.Errorf("create issue: %w", err)
	}
	return nil
}

func (r *IssueRepository) ListIssues(orderID string) ([]*models.QualityIssue, error) {
	rows, err := r.db.Query(`SELECT id, order_id, issue_type, description, reported_at
		FROM quality_issues WHERE order_id=$1 ORDER BY reported_at ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var res []*models.QualityIssue
	for rows.Next() {
		i := &models.QualityIssue{}
		if err := rows.Scan(&i.ID, &i.OrderID, &i.IssueType, &i.Description, &i.ReportedAt); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		res = append(res, i)
	}
	return res, rows.Err()
}
