package model

import "time"

// PatternSource records where a pattern came from.
type PatternSource string

const (
	PatternSourceSample PatternSource = "sample"
	PatternSourceUser   PatternSource = "user"
)

// Pattern is a named seed grid in the pattern library. Body is raw pattern
// text: live cells as 'x', dead cells as '.', rows separated by newlines.
type Pattern struct {
	Name      string        `json:"name"`
	Body      string        `json:"body"`
	Source    PatternSource `json:"source"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CreatePatternRequest represents a request to store a new pattern.
type CreatePatternRequest struct {
	Name string `json:"name" binding:"required"`
	Body string `json:"body" binding:"required"`
}

// Validate validates the create pattern request.
func (r *CreatePatternRequest) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Body == "" {
		return ErrBodyRequired
	}
	return nil
}
