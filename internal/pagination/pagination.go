// Package pagination implements "take N+1" cursor pages ordered newest first.
package pagination

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

var (
	ErrInvalidCursor = errors.New("invalid cursor")
	ErrInvalidLimit  = errors.New("invalid limit")
)

// Request is a parsed page request.
type Request struct {
	Cursor uuid.NullUUID
	Limit  int
}

// Fetch is the number of rows to ask the database for.
func (r Request) Fetch() int32 {
	return int32(r.Limit + 1)
}

// Parse reads raw query values. Empty values mean the first page and the
// default limit; limits outside [1, MaxLimit] are clamped.
func Parse(cursor, limit string) (Request, error) {
	req := Request{Limit: DefaultLimit}
	if cursor != "" {
		id, err := uuid.Parse(cursor)
		if err != nil {
			return Request{}, ErrInvalidCursor
		}
		req.Cursor = uuid.NullUUID{UUID: id, Valid: true}
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return Request{}, ErrInvalidLimit
		}
		req.Limit = clamp(n)
	}
	return req, nil
}

func clamp(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxLimit:
		return MaxLimit
	default:
		return n
	}
}

// Page is one page of items plus the token that opens the next one.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor"`
}

// Build trims the extra row fetched past the limit and turns its id into the
// next cursor.
func Build[T any](rows []T, limit int, id func(T) uuid.UUID) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	if len(rows) <= limit {
		return Page[T]{Items: rows}
	}
	next := id(rows[limit]).String()
	return Page[T]{Items: rows[:limit], NextCursor: &next}
}

// Map converts the items of a page while keeping its cursor.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Page[U]{Items: out, NextCursor: p.NextCursor}
}
