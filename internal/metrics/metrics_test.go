package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveNotification(t *testing.T) {
	m := New()
	m.ObserveNotification("telegram", nil)
	m.ObserveNotification("serverchan", errors.New("boom"))
	m.ObserveNotification("serverchan", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("telegram", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("serverchan", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("serverchan", "success")))
}

func TestObserveRun(t *testing.T) {
	m := New()
	m.ObserveRun(time.Now(), errors.New("fetch failed"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LastSuccess))

	m.ObserveRun(time.Now(), nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("success")))
	assert.Greater(t, testutil.ToFloat64(m.LastSuccess), 0.0)
}

func TestNew_RegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.RecordsStored.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RecordsStored))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveBalances(120, 3)
	path := filepath.Join(t.TempDir(), "dormpower.prom")

	require.NoError(t, m.WriteTextfile(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.True(t, strings.Contains(out, `dormpower_balance_kwh{room="air_conditioning"} 3`), out)
	assert.True(t, strings.Contains(out, `dormpower_balance_kwh{room="lighting"} 120`), out)
}
