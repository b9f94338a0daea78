package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/storyarchive/content-api/models"
	"github.com/storyarchive/content-api/repositories"
	"go.uber.org/zap"
)

// ContentRepository implements the repositories.ContentRepository interface
type ContentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *DB, logger *zap.Logger) repositories.ContentRepository {
	return &ContentRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new content entry
func (r *ContentRepository) Create(ctx context.Context, content *models.Content) error {
	query := `
		INSERT INTO contents (id, title, introduction, source, story, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		content.ID,
		content.Title,
		content.Introduction,
		content.Source,
		content.Story,
		pq.Array(content.Images),
		content.CreatedAt,
		content.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	r.logger.Debug("content created", zap.String("id", content.ID.String()), zap.String("title", content.Title))
	return nil
}

// GetByID retrieves a content entry by ID
func (r *ContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	query := `
		SELECT id, title, introduction, source, story, images, created_at, updated_at
		FROM contents
		WHERE id = $1
	`

	content := &models.Content{}

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&content.ID,
		&content.Title,
		&content.Introduction,
		&content.Source,
		&content.Story,
		pq.Array(&content.Images),
		&content.CreatedAt,
		&content.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("content %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	return content, nil
}

// List retrieves all content entries, newest first
func (r *ContentRepository) List(ctx context.Context) ([]*models.Content, error) {
	query := `
		SELECT id, title, introduction, source, story, images, created_at, updated_at
		FROM contents
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contents: %w", err)
	}
	defer rows.Close()

	var contents []*models.Content
	for rows.Next() {
		content := &models.Content{}
		err := rows.Scan(
			&content.ID,
			&content.Title,
			&content.Introduction,
			&content.Source,
			&content.Story,
			pq.Array(&content.Images),
			&content.CreatedAt,
			&content.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, content)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content rows: %w", err)
	}

	return contents, nil
}

// Update updates a content entry
func (r *ContentRepository) Update(ctx context.Context, content *models.Content) error {
	query := `
		UPDATE contents
		SET title = $2,
		    introduction = $3,
		    source = $4,
		    story = $5,
		    images = $6,
		    updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		content.ID,
		content.Title,
		content.Introduction,
		content.Source,
		content.Story,
		pq.Array(content.Images),
		content.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("content %s: %w", content.ID, repositories.ErrNotFound)
	}

	r.logger.Debug("content updated", zap.String("id", content.ID.String()))
	return nil
}

// Delete deletes a content entry
func (r *ContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM contents WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("content %s: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("content deleted", zap.String("id", id.String()))
	return nil
}
