package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sayuryunur/storefront/internal/models"
	"github.com/sayuryunur/storefront/internal/utils"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.FeedbackStatus, errorMsg string) error
	List(ctx context.Context, page, size int) ([]*models.Feedback, int, error)
}

type feedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepo(db *sql.DB) FeedbackRepository {
	return &feedbackRepository{DB: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO feedback (id, name, contact, message, status, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, feedback.ID, feedback.Name, feedback.Contact, feedback.Message, feedback.Status, feedback.ErrorMessage).
		Scan(&feedback.CreatedAt, &feedback.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	return nil
}

func (r *feedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.FeedbackStatus, errorMsg string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE feedback SET status = $1, error_message = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, status, errorMsg, id)
	if err != nil {
		return fmt.Errorf("failed to update the feedback status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return fmt.Errorf("feedback not found: %s", id)
	}

	return nil
}

// List returns one page of feedback, newest first, and the total count.
func (r *feedbackRepository) List(ctx context.Context, page, size int) ([]*models.Feedback, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM feedback`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	query := `
		SELECT id, name, contact, message, status, error_message, created_at, updated_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	items := []*models.Feedback{}

	for rows.Next() {
		var f models.Feedback

		if err := rows.Scan(&f.ID, &f.Name, &f.Contact, &f.Message, &f.Status, &f.ErrorMessage, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan feedback: %w", err)
		}

		items = append(items, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return items, total, nil
}
