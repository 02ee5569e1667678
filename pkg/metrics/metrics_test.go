package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSessionCounters(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.SessionStarted()
	m.SessionStarted()
	m.SessionFinished("confirmed")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.SessionsStarted.WithLabelValues()))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SessionsActive.WithLabelValues()))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SessionsFinished.WithLabelValues("confirmed")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.SessionsFinished.WithLabelValues("expired")))
}

func TestCacheCounters(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheHits.WithLabelValues()))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheMisses.WithLabelValues()))
}
