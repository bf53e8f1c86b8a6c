package metrics

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesDomainCounters(t *testing.T) {
	Votes.WithLabelValues("added upvote").Inc()
	FeedbackSubmitted.WithLabelValues("bug").Inc()

	rec := httptest.NewRecorder()
	Handler(slog.New(slog.NewTextHandler(io.Discard, nil))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `feedbackme_votes_total{action="added upvote"}`)
	assert.Contains(t, body, `feedbackme_feedback_submitted_total{type="bug"}`)
	assert.Contains(t, body, "go_goroutines")
}

func TestRateLimitedCounter(t *testing.T) {
	RateLimited.Inc()

	families, err := Registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() == "feedbackme_rate_limited_requests_total" {
			found = true
			assert.GreaterOrEqual(t, mf.GetMetric()[0].GetCounter().GetValue(), 1.0)
		}
	}
	assert.True(t, found)
}
