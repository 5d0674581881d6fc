// Package pagination implements opaque keyset cursors.
//
// Result sets are ordered by (At DESC, ID DESC): At is a creation or event
// timestamp and ID a unique tie-breaker, which makes the order total even
// when many rows share a timestamp. A cursor carries the key of the last row
// handed out; the next page continues with rows strictly below it.
//
// Cursors are HS256-signed JWTs. Callers must treat them as black boxes and
// pass them back unmodified.
package pagination

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Key is the boundary row of a page.
type Key struct {
	At time.Time
	ID string
}

// Less reports whether k sorts after other in (At DESC, ID DESC) order,
// i.e. whether (k.At, k.ID) < (other.At, other.ID).
func (k Key) Less(other Key) bool {
	if !k.At.Equal(other.At) {
		return k.At.Before(other.At)
	}
	return k.ID < other.ID
}

// Clause returns the keyset filter for the columns atCol/idCol with
// placeholders starting at $argN. A nil key yields no filter.
//
//	where, args := after.Clause("created_at", "id", 2)
//	// "AND (created_at, id) < ($2, $3)", []any{at, id}
func (k *Key) Clause(atCol, idCol string, argN int) (string, []any) {
	if k == nil {
		return "", nil
	}
	return fmt.Sprintf("AND (%s, %s) < ($%d, $%d)", atCol, idCol, argN, argN+1), []any{k.At, k.ID}
}

type claims struct {
	jwt.RegisteredClaims
	At int64  `json:"at"`
	ID string `json:"id"`
}

// Codec signs and verifies cursors.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Encode serializes key into an opaque cursor.
func (c *Codec) Encode(key Key) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		At: key.At.UnixMicro(),
		ID: key.ID,
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("cursor signing error: %w", err)
	}
	return s, nil
}

// Decode parses a cursor produced by Encode. An empty cursor means "first
// page" and yields a nil key. Anything malformed, tampered with or of the
// wrong shape fails with common.ErrValidation.
func (c *Codec) Decode(cursor string) (*Key, error) {
	if cursor == "" {
		return nil, nil
	}

	cl := &claims{}
	token, err := jwt.ParseWithClaims(cursor, cl, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, common.Errorf(common.ErrValidation, "invalid cursor")
	}
	if cl.ID == "" || cl.At <= 0 {
		return nil, common.Errorf(common.ErrValidation, "invalid cursor")
	}

	return &Key{At: time.UnixMicro(cl.At).UTC(), ID: cl.ID}, nil
}
