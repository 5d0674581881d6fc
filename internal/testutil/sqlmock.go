// Package testutil holds helpers shared by repository tests.
package testutil

import (
	"database/sql"
	"database/sql/driver"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// arrayConverter lets []string arguments (PostgreSQL text[] / ANY($n))
// reach the mock driver unchanged; everything else goes through the
// default database/sql conversion.
type arrayConverter struct{}

func (arrayConverter) ConvertValue(v any) (driver.Value, error) {
	if s, ok := v.([]string); ok {
		return s, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

// NewMock returns a sqlmock-backed *sql.DB using the regexp query matcher.
// The database is closed when the test ends.
func NewMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.ValueConverterOption(arrayConverter{}),
	)
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// Strings matches a []string argument by value.
type Strings []string

func (s Strings) Match(v driver.Value) bool {
	got, ok := v.([]string)
	if !ok {
		return false
	}
	if len(got) == 0 && len(s) == 0 {
		return true
	}
	return reflect.DeepEqual(got, []string(s))
}
