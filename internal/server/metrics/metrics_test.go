package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeMutation_Results(t *testing.T) {
	m := New()

	m.EdgeMutation("follow", "insert", true, nil)
	m.EdgeMutation("follow", "insert", false, nil)
	m.EdgeMutation("follow", "insert", false, nil)
	m.EdgeMutation("like", "delete", true, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.edgeMutations.WithLabelValues("follow", "insert", ResultApplied)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.edgeMutations.WithLabelValues("follow", "insert", ResultNoop)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.edgeMutations.WithLabelValues("like", "delete", ResultError)))
}

func TestObserveRPC(t *testing.T) {
	m := New()

	m.ObserveRPC("/catsocial.v1.CatSocial/Ping", "OK", 5*time.Millisecond)
	m.ObserveRPC("/catsocial.v1.CatSocial/Ping", "OK", 7*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(m.rpcDuration))
}

func TestHandler_ServesRegistry(t *testing.T) {
	m := New()
	m.EdgeMutation("membership", "insert", true, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `catsocial_edge_mutations_total{edge="membership",op="insert",result="applied"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.EdgeMutation("like", "insert", true, nil)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.edgeMutations.WithLabelValues("like", "insert", ResultApplied)))
	assert.NotSame(t, a.registry, b.registry)
}
