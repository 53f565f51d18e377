package dto

import (
	"time"
)

// CreateJournalEntryRequest represents a new journal entry in the API request
type CreateJournalEntryRequest struct {
	Entry string `json:"entry"`
}

// JournalEntryResponse represents a journal entry in the API response
type JournalEntryResponse struct {
	ID        string    `json:"id"`
	Entry     string    `json:"entry"`
	CreatedAt time.Time `json:"created_at"`
}
