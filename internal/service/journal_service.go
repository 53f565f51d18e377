package service

import (
	"context"
	"strings"

	"wellspring/internal/domain"
	"wellspring/internal/dto"
)

// JournalService defines the interface for journal operations
type JournalService interface {
	CreateEntry(ctx context.Context, userID, entry string) (*dto.JournalEntryResponse, error)
	GetEntries(ctx context.Context, userID string) ([]dto.JournalEntryResponse, error)
}

type journalService struct {
	repo domain.JournalRepository
}

// NewJournalService creates a new instance of JournalService
func NewJournalService(repo domain.JournalRepository) JournalService {
	return &journalService{repo: repo}
}

// CreateEntry implements JournalService
func (s *journalService) CreateEntry(ctx context.Context, userID, entry string) (*dto.JournalEntryResponse, error) {
	if strings.TrimSpace(entry) == "" {
		return nil, domain.NewInvalidInputError("entry cannot be empty")
	}

	journalEntry := domain.NewJournalEntry(userID, entry)
	if err := journalEntry.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveEntry(ctx, journalEntry); err != nil {
		return nil, domain.NewInternalError("Failed to save journal entry", err)
	}

	return &dto.JournalEntryResponse{
		ID:        journalEntry.ID,
		Entry:     journalEntry.Entry,
		CreatedAt: journalEntry.CreatedAt,
	}, nil
}

// GetEntries implements JournalService
func (s *journalService) GetEntries(ctx context.Context, userID string) ([]dto.JournalEntryResponse, error) {
	entries, err := s.repo.GetEntriesByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get journal entries", err)
	}

	responses := make([]dto.JournalEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, dto.JournalEntryResponse{
			ID:        e.ID,
			Entry:     e.Entry,
			CreatedAt: e.CreatedAt,
		})
	}
	return responses, nil
}
