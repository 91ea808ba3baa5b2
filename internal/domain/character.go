package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Character is an immutable value fetched from the API. Its identity is ID.
type Character struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Ki          string `json:"ki"`
	MaxKi       string `json:"maxKi,omitempty"`
	Race        string `json:"race,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Description string `json:"description,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
}

// UnmarshalJSON accepts the id either as a JSON number or as a string.
func (c *Character) UnmarshalJSON(data []byte) error {
	type plain Character
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	*c = Character(raw.plain)
	c.ID = id
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decode id: %w", err)
	}
	return n.String(), nil
}

// PageMeta describes the position of a page within the full listing.
// It is informational; charview does not follow further pages.
type PageMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// Page is an ordered sequence of characters in API response order.
type Page struct {
	Items []Character `json:"items"`
	Meta  PageMeta    `json:"meta"`
}

// Len returns the number of characters on the page.
func (p Page) Len() int {
	return len(p.Items)
}

// Envelope wraps an API response: success flag, status line and optional body.
type Envelope[T any] struct {
	IsSuccessful  bool
	StatusCode    int
	StatusMessage string
	Body          *T
}
