package repository

import (
	"context"
	"fmt"

	"wellspring/internal/domain"
	"wellspring/internal/repository/models"
	"wellspring/internal/util"

	"github.com/jmoiron/sqlx"
)

// JournalDatabaseAdapter implements domain.JournalRepository using sqlx.DB
type JournalDatabaseAdapter struct {
	db *sqlx.DB
}

// NewJournalDatabaseAdapter creates a new instance of JournalDatabaseAdapter
func NewJournalDatabaseAdapter(db *sqlx.DB) domain.JournalRepository {
	return &JournalDatabaseAdapter{db: db}
}

// SaveEntry implements domain.JournalRepository
func (a *JournalDatabaseAdapter) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	if entry == nil {
		return fmt.Errorf("cannot save nil journal entry")
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	entry.ID = util.NewULID()

	query := `INSERT INTO journal_entries (id, user_id, entry, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := a.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Entry,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}
	return nil
}

// GetEntriesByUserID implements domain.JournalRepository
func (a *JournalDatabaseAdapter) GetEntriesByUserID(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	var modelEntries []models.JournalEntry
	query := `SELECT id, user_id, entry, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC`

	if err := a.db.SelectContext(ctx, &modelEntries, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get journal entries for user %s: %w", userID, err)
	}

	entries := make([]domain.JournalEntry, 0, len(modelEntries))
	for _, m := range modelEntries {
		entries = append(entries, domain.JournalEntry{
			ID:        m.ID,
			UserID:    m.UserID,
			Entry:     m.Entry,
			CreatedAt: m.CreatedAt,
		})
	}
	return entries, nil
}
