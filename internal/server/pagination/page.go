package pagination

import (
	"fmt"

	"github.com/dmitrijs2005/catsocial/internal/common"
)

// Fallback page sizes used when configured Limits are unusable.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Limits bounds the page size requested by clients.
type Limits struct {
	Default int
	Max     int
}

// Normalize returns l with Max >= 1 and 1 <= Default <= Max.
func (l Limits) Normalize() Limits {
	if l.Max < 1 {
		l.Max = MaxLimit
	}
	if l.Default < 1 {
		l.Default = DefaultLimit
	}
	l.Default = min(l.Default, l.Max)
	return l
}

// Clamp returns the effective page size for a requested one: Default when
// none is requested, and never outside [1, Max].
func (l Limits) Clamp(requested int) int {
	n := requested
	if n <= 0 {
		n = l.Default
	}
	return max(1, min(n, l.Max))
}

// Request is a decoded page request.
type Request struct {
	Limit int
	After *Key
}

// Fetch is the number of rows a repository must load: one more than the
// page size, so that the presence of a next page is known without a count.
func (r Request) Fetch() int {
	return r.Limit + 1
}

// Paginator turns raw (limit, cursor) pairs into Requests and cuts fetched
// rows into pages.
type Paginator struct {
	codec  *Codec
	limits Limits
}

func NewPaginator(codec *Codec, limits Limits) *Paginator {
	return &Paginator{codec: codec, limits: limits.Normalize()}
}

// Request validates the cursor and clamps the limit.
func (p *Paginator) Request(limit int, cursor string) (Request, error) {
	if limit < 0 {
		return Request{}, common.Errorf(common.ErrValidation, "limit must not be negative")
	}
	after, err := p.codec.Decode(cursor)
	if err != nil {
		return Request{}, err
	}
	return Request{Limit: p.limits.Clamp(limit), After: after}, nil
}

// Cut applies the N+1 rule to rows fetched with req.Fetch(). When more than
// req.Limit rows came back the page is truncated and the next cursor is
// encoded from the last row of the page; otherwise the next cursor is empty.
func Cut[T any](p *Paginator, req Request, rows []T, keyOf func(T) Key) ([]T, string, error) {
	if req.Limit < 1 || len(rows) <= req.Limit {
		return rows, "", nil
	}

	page := rows[:req.Limit]
	last := keyOf(page[len(page)-1])
	// A cursor that does not move past the previous one would loop forever.
	if req.After != nil && !last.Less(*req.After) {
		return nil, "", fmt.Errorf("%w: page boundary %v/%s is not below cursor %v/%s",
			common.ErrorInternal, last.At, last.ID, req.After.At, req.After.ID)
	}
	next, err := p.codec.Encode(last)
	if err != nil {
		return nil, "", err
	}
	return page, next, nil
}
