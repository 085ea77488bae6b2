package domain

import "fmt"

// TextUnit is an immutable piece of tenant knowledge. Units arrive already
// parsed (ingestion happens upstream) and are owned by the tenant's index.
type TextUnit struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ScoredUnit is a search hit paired with its similarity score.
// Higher scores mean more similar.
type ScoredUnit struct {
	Unit  TextUnit `json:"unit"`
	Score float64  `json:"score"`
}

// PlaceholderUnit is the single unit a tenant's index is built from when no
// knowledge has been added yet. The tenant marker in the content makes it
// obvious in replies which namespace answered.
func PlaceholderUnit(tenant string) TextUnit {
	return TextUnit{
		Content: fmt.Sprintf("Hello! (tenant=%s) No knowledge has been added for this tenant yet.", tenant),
	}
}
