package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gratia-app/gratia-backend/internal/models"
	"github.com/gratia-app/gratia-backend/internal/services"
)

type CreateEntryRequest struct {
	Text        string   `json:"text"`
	Mood        string   `json:"mood"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date,omitempty"` // RFC 3339; defaults to now
	Quote       string   `json:"quote"`
	QuoteAuthor string   `json:"quote_author"`
	Prompt      string   `json:"prompt"`
}

type UpdateFavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

type EntryResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Entry   *models.Entry `json:"entry,omitempty"`
}

type EntriesResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Entries []models.Entry `json:"entries"`
	Total   int            `json:"total"`
}

// CreateEntry saves a new journal entry for the authenticated user.
func CreateEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, EntryResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, EntryResponse{Success: false, Message: "Invalid request body"})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, EntryResponse{Success: false, Message: "Invalid date; expected RFC 3339"})
			return
		}
		date = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entry, err := services.CreateEntry(ctx, ownerID, services.NewEntry{
		Text:        req.Text,
		Mood:        req.Mood,
		Tags:        req.Tags,
		Date:        date,
		Quote:       req.Quote,
		QuoteAuthor: req.QuoteAuthor,
		Prompt:      req.Prompt,
	})
	if errors.Is(err, services.ErrEmptyEntryText) {
		writeJSON(w, http.StatusBadRequest, EntryResponse{Success: false, Message: "Entry text is required"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, EntryResponse{Success: false, Message: "Failed to save entry"})
		return
	}

	writeJSON(w, http.StatusCreated, EntryResponse{Success: true, Message: "Entry saved", Entry: entry})
}

// GetEntries lists the authenticated user's entries, newest first. Optional
// search, mood and date query params filter the fetched list.
func GetEntries(w http.ResponseWriter, r *http.Request) {
	listEntries(w, r, services.ListEntries)
}

// GetFavoriteEntries lists the authenticated user's favorited entries.
func GetFavoriteEntries(w http.ResponseWriter, r *http.Request) {
	listEntries(w, r, services.ListFavoriteEntries)
}

func listEntries(w http.ResponseWriter, r *http.Request, fetch func(context.Context, string) ([]models.Entry, error)) {
	ownerID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, EntriesResponse{Success: false, Message: "Authentication required", Entries: []models.Entry{}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entries, err := fetch(ctx, ownerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, EntriesResponse{Success: false, Message: "Failed to load entries", Entries: []models.Entry{}})
		return
	}

	query := r.URL.Query()
	entries = services.FilterEntries(entries, services.FilterParams{
		Search:     query.Get("search"),
		Mood:       query.Get("mood"),
		DatePrefix: query.Get("date"),
	})

	writeJSON(w, http.StatusOK, EntriesResponse{Success: true, Entries: entries, Total: len(entries)})
}

// GetEntryByID returns a single entry. A missing entry and someone else's
// entry are both a plain 404.
func GetEntryByID(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, EntryResponse{Success: false, Message: "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entry, err := services.GetEntryByID(ctx, chi.URLParam(r, "id"), ownerID)
	if errors.Is(err, services.ErrEntryNotFound) {
		writeJSON(w, http.StatusNotFound, EntryResponse{Success: false, Message: "Entry not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, EntryResponse{Success: false, Message: "Failed to load entry"})
		return
	}

	writeJSON(w, http.StatusOK, EntryResponse{Success: true, Entry: entry})
}

// UpdateEntryFavorite sets the favorite flag on one of the user's entries.
func UpdateEntryFavorite(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, EntryResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req UpdateFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, EntryResponse{Success: false, Message: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := services.SetEntryFavorite(ctx, chi.URLParam(r, "id"), ownerID, req.Favorite)
	if errors.Is(err, services.ErrEntryNotFound) {
		writeJSON(w, http.StatusNotFound, EntryResponse{Success: false, Message: "Entry not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, EntryResponse{Success: false, Message: "Failed to update favorite status"})
		return
	}

	writeJSON(w, http.StatusOK, EntryResponse{Success: true, Message: "Favorite updated"})
}
