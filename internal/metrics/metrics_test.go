package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/rileyhilliard/rtad/internal/logger"
	"github.com/rileyhilliard/rtad/internal/rtad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveFetch(t *testing.T) {
	r := New()
	r.ObserveFetch(rtad.KindLastb, 20*time.Millisecond, nil)
	r.ObserveFetch(rtad.KindLastb, 30*time.Millisecond, nil)
	r.ObserveFetch(rtad.KindLastb, time.Second, fmt.Errorf("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetches.WithLabelValues("lastb", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetches.WithLabelValues("lastb", ResultError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.fetches.WithLabelValues("proxy", ResultOK)))
	assert.Greater(t, testutil.ToFloat64(r.lastSuccess.WithLabelValues("lastb")), 0.0)

	m := &dto.Metric{}
	require.NoError(t, r.duration.WithLabelValues("lastb").(interface{ Write(*dto.Metric) error }).Write(m))
	assert.Equal(t, uint64(3), m.GetHistogram().GetSampleCount())
}

func TestRecorder_ObserveFeed(t *testing.T) {
	r := New()
	feed := rtad.NewFeed(rtad.KindProxy, rtad.FeedOptions{})
	feed.Apply([]rtad.Entry{rtad.ProxyEntry{ID: 7, ErrorCode: 404}, rtad.ProxyEntry{ID: 9, ErrorCode: 500}})

	r.ObserveFeed(feed.Stats(), 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.rowsApplied.WithLabelValues("proxy")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.tableRows.WithLabelValues("proxy")))
	assert.Equal(t, 9.0, testutil.ToFloat64(r.cursor.WithLabelValues("proxy")))

	feed.Reset()
	r.ObserveFeed(feed.Stats(), 0)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.rowsApplied.WithLabelValues("proxy")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.tableRows.WithLabelValues("proxy")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.poolRows.WithLabelValues("proxy")))
	assert.Equal(t, -1.0, testutil.ToFloat64(r.cursor.WithLabelValues("proxy")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveFetch(rtad.KindLastb, time.Millisecond, nil)
		r.ObserveFeed(rtad.FeedStats{Kind: rtad.KindLastb}, 3)
	})
	assert.Nil(t, r.Registry())

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.ObserveFetch(rtad.KindProxy, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `rtad_fetches_total{result="ok",table="proxy"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRecorder_Serve(t *testing.T) {
	r := New()
	r.ObserveFetch(rtad.KindLastb, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, err := r.Serve(ctx, "127.0.0.1:0", logger.NewBufferLogger())
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "rtad_fetches_total"))
}

func TestRecorder_ServeBadAddr(t *testing.T) {
	_, err := New().Serve(context.Background(), "256.0.0.1:bad", nil)
	assert.Error(t, err)
}
