package models

// ContentKind is the category of a posted message.
type ContentKind string

const (
	KindJoke   ContentKind = "joke"
	KindTrivia ContentKind = "trivia"
)

// ContentItem is one piece of text produced for a single post.
// Items are built fresh per tick and never persisted.
type ContentItem struct {
	Kind      ContentKind `json:"kind"`
	Text      string      `json:"text"`
	Generated bool        `json:"generated"`
}
