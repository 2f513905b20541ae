package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/wellcoach/patterns-api/internal/models"
)

// Fixed width so that text comparison in SQL matches time order
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteInsightRepository stores conversation insights in a local SQLite
// file. It backs offline analysis and the import command.
type SQLiteInsightRepository struct {
	db *sql.DB
}

// NewSQLiteInsightRepository opens (or creates) the database at path and ensures the schema
func NewSQLiteInsightRepository(ctx context.Context, path string) (*SQLiteInsightRepository, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// Single writer
	db.SetMaxOpenConns(1)

	repo := &SQLiteInsightRepository{db: db}
	if err := repo.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return repo, nil
}

func (r *SQLiteInsightRepository) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversation_insights (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            message TEXT NOT NULL,
            created_at TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_conversation_insights_user_created
            ON conversation_insights(user_id, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteInsightRepository) GetByUserIDSince(ctx context.Context, userID string, since time.Time) ([]models.ConversationInsight, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT message, created_at FROM conversation_insights
         WHERE user_id = ? AND created_at >= ?
         ORDER BY created_at ASC, rowid ASC`,
		userID, since.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation insights: %w", err)
	}
	defer rows.Close()

	var insights []models.ConversationInsight
	for rows.Next() {
		var insight models.ConversationInsight
		var createdAt string
		if err := rows.Scan(&insight.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation insight: %w", err)
		}
		insight.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
		}
		insights = append(insights, insight)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversation insights: %w", err)
	}

	return insights, nil
}

func (r *SQLiteInsightRepository) BulkCreate(ctx context.Context, userID string, insights []models.ConversationInsight) error {
	if len(insights) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conversation_insights (id, user_id, message, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, insight := range insights {
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), userID, insight.Message, insight.CreatedAt.UTC().Format(sqliteTimeLayout)); err != nil {
			return fmt.Errorf("failed to bulk create conversation insights: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit conversation insights: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *SQLiteInsightRepository) Close() error {
	return r.db.Close()
}
