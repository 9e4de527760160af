package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/gratia-app/gratia-backend/internal/database"
	"github.com/gratia-app/gratia-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EntriesCollection is the MongoDB collection holding journal entries.
const EntriesCollection = "entries"

var (
	// ErrNotAuthenticated is returned when an operation requires a signed-in
	// user and none was provided.
	ErrNotAuthenticated = errors.New("authentication required")

	// ErrEntryNotFound covers both a missing entry and an entry owned by a
	// different user. The two cases are deliberately indistinguishable so the
	// API never confirms the existence of someone else's entries.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEmptyEntryText is returned when an entry has no text after trimming.
	ErrEmptyEntryText = errors.New("entry text is required")
)

// NewEntry is the caller-supplied part of an entry. The quote and prompt
// fields are snapshots of whatever was shown when the user wrote the entry.
type NewEntry struct {
	Text        string
	Mood        string
	Tags        []string
	Date        time.Time
	Quote       string
	QuoteAuthor string
	Prompt      string
}

// FilterParams narrows an already-fetched entry list. Empty fields match
// everything; the three filters combine with AND.
type FilterParams struct {
	Search     string // case-insensitive substring of text or any tag
	Mood       string // exact mood match
	DatePrefix string // prefix of the entry date in RFC 3339 form, e.g. "2024-01-02"
}

// EnsureEntryIndexes creates the indexes backing the owner-scoped sorted
// queries. When these are missing the list operations fall back to an
// unsorted fetch plus in-memory sort.
func EnsureEntryIndexes(ctx context.Context) error {
	_, err := database.DB.Collection(EntriesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "favorite", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

// ListEntries returns all of ownerID's entries, newest first. An empty
// ownerID yields an empty list, never an error.
func ListEntries(ctx context.Context, ownerID string) ([]models.Entry, error) {
	return listEntries(ctx, ownerID, false)
}

// ListFavoriteEntries returns ownerID's favorited entries, newest first.
func ListFavoriteEntries(ctx context.Context, ownerID string) ([]models.Entry, error) {
	return listEntries(ctx, ownerID, true)
}

func listEntries(ctx context.Context, ownerID string, favoritesOnly bool) ([]models.Entry, error) {
	if ownerID == "" {
		return []models.Entry{}, nil
	}

	filter := bson.M{"user_id": ownerID}
	if favoritesOnly {
		filter["favorite"] = true
	}

	col := database.DB.Collection(EntriesCollection)

	var entries []models.Entry
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, filter, findOptions)
	if err == nil {
		err = cursor.All(ctx, &entries)
	}
	if err != nil {
		if !isSortUnsupported(err) {
			return nil, err
		}
		// Degraded path: fetch unsorted and sort here. A second failure
		// surfaces to the caller; there are no retries.
		cursor, err = col.Find(ctx, filter)
		if err != nil {
			return nil, err
		}
		if err = cursor.All(ctx, &entries); err != nil {
			return nil, err
		}
		sortEntriesNewestFirst(entries)
	}

	if entries == nil {
		entries = []models.Entry{}
	}
	return entries, nil
}

// isSortUnsupported reports whether err looks like the server rejecting the
// sorted query itself (missing index support, sort memory limit) rather than
// a general store failure. Only these errors trigger the degraded fetch.
func isSortUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	// 292 QueryExceededMemoryLimitNoDiskUseAllowed, 96 OperationFailed
	if cmdErr.Code == 292 || cmdErr.Code == 96 {
		return true
	}
	msg := strings.ToLower(cmdErr.Message)
	return strings.Contains(msg, "sort") || strings.Contains(msg, "index")
}

// sortEntriesNewestFirst orders entries by creation time descending, matching
// the server-side sort of the primary query. Entries predating the
// created_at field fall back to their logical date. The sort is stable so
// ties keep their store order.
func sortEntriesNewestFirst(entries []models.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entrySortKey(entries[i]).After(entrySortKey(entries[j]))
	})
}

func entrySortKey(e models.Entry) time.Time {
	if e.CreatedAt.IsZero() {
		return e.Date
	}
	return e.CreatedAt
}

// FilterEntries applies params to an already-fetched list. It is pure, does
// no I/O and preserves the relative order of the input.
func FilterEntries(entries []models.Entry, params FilterParams) []models.Entry {
	search := strings.ToLower(params.Search)

	filtered := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if params.Mood != "" && e.Mood != params.Mood {
			continue
		}
		if search != "" && !entryMatchesSearch(e, search) {
			continue
		}
		if params.DatePrefix != "" && !strings.HasPrefix(e.Date.UTC().Format(time.RFC3339), params.DatePrefix) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func entryMatchesSearch(e models.Entry, search string) bool {
	if strings.Contains(strings.ToLower(e.Text), search) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// CleanTags trims every tag and drops the ones left empty, preserving order.
func CleanTags(tags []string) []string {
	var cleaned []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}

// CreateEntry persists a new entry for ownerID and returns it with the
// assigned id. Tag cleaning and text trimming happen here, before the write.
func CreateEntry(ctx context.Context, ownerID string, in NewEntry) (*models.Entry, error) {
	if ownerID == "" {
		return nil, ErrNotAuthenticated
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrEmptyEntryText
	}

	now := time.Now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	entry := models.Entry{
		ID:          primitive.NewObjectID(),
		UserID:      ownerID,
		CreatedAt:   now,
		Date:        date,
		Text:        text,
		Mood:        strings.TrimSpace(in.Mood),
		Tags:        CleanTags(in.Tags),
		Quote:       in.Quote,
		QuoteAuthor: in.QuoteAuthor,
		Prompt:      in.Prompt,
	}

	if _, err := database.DB.Collection(EntriesCollection).InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetEntryByID fetches a single entry. A missing entry, a malformed id and
// an entry owned by someone else all return ErrEntryNotFound.
func GetEntryByID(ctx context.Context, id, ownerID string) (*models.Entry, error) {
	if ownerID == "" {
		return nil, ErrEntryNotFound
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrEntryNotFound
	}

	var entry models.Entry
	err = database.DB.Collection(EntriesCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	if entry.UserID != ownerID {
		return nil, ErrEntryNotFound
	}
	return &entry, nil
}

// SetEntryFavorite flips the favorite flag on one of ownerID's entries. The
// update filter is owner-scoped, so a foreign entry matches nothing and the
// caller sees the same ErrEntryNotFound as for a missing one. Callers
// re-fetch to observe the new state; nothing is updated optimistically.
func SetEntryFavorite(ctx context.Context, id, ownerID string, favorite bool) error {
	if ownerID == "" {
		return ErrNotAuthenticated
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrEntryNotFound
	}

	result, err := database.DB.Collection(EntriesCollection).UpdateOne(ctx,
		bson.M{"_id": objectID, "user_id": ownerID},
		bson.M{"$set": bson.M{"favorite": favorite}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrEntryNotFound
	}
	return nil
}
