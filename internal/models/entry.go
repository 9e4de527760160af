package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry is a single gratitude journal record. The quote and prompt shown at
// writing time are snapshotted onto the entry and never refreshed.
type Entry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	Date        time.Time          `bson:"date" json:"date"`
	Text        string             `bson:"text" json:"text"`
	Mood        string             `bson:"mood,omitempty" json:"mood,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Quote       string             `bson:"quote,omitempty" json:"quote,omitempty"`
	QuoteAuthor string             `bson:"quote_author,omitempty" json:"quote_author,omitempty"`
	Prompt      string             `bson:"prompt,omitempty" json:"prompt,omitempty"`
	Favorite    bool               `bson:"favorite,omitempty" json:"favorite"`
}
