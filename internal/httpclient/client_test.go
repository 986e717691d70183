package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reply struct {
	Value string `json:"value"`
}

func decodeReply(b []byte) (reply, error) {
	var r reply
	if err := json.Unmarshal(b, &r); err != nil {
		return reply{}, err
	}
	if r.Value == "" {
		return reply{}, errors.New("missing value")
	}
	return r, nil
}

func recordingSleep(delays *[]time.Duration) Option {
	return WithSleep(func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	})
}

func TestDoSucceedsOnThirdAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"q":"hi"}`, string(body))

		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"value":"ok"}`))
	}))
	defer srv.Close()

	var delays []time.Duration
	c := New(WithHeader("x-goog-api-key", "secret"), recordingSleep(&delays))

	got, err := Do(context.Background(), c, "test", srv.URL, map[string]string{"q": "hi"}, decodeReply)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Value)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestDoPropagatesLastErrorAfterExhaustion(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte{byte('0' + n)})
	}))
	defer srv.Close()

	var delays []time.Duration
	c := New(recordingSleep(&delays))

	_, err := Do(context.Background(), c, "test", srv.URL, struct{}{}, decodeReply)
	require.Error(t, err)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)

	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusInternalServerError, status.Code)
	assert.Equal(t, "3", status.Body, "last attempt's error is the one propagated")
	assert.Len(t, delays, 2, "no wait after the final attempt")
}

func TestDoTreatsExtractorFailureAsAttemptFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_, _ = w.Write([]byte(`{"value":"second"}`))
	}))
	defer srv.Close()

	var delays []time.Duration
	c := New(recordingSleep(&delays))
	got, err := Do(context.Background(), c, "test", srv.URL, nil, decodeReply)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Value)
	assert.Equal(t, []time.Duration{time.Second}, delays)
}

func TestDoMalformedResponseIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(WithRetry(1, time.Millisecond))
	_, err := Do(context.Background(), c, "test", srv.URL, nil, decodeReply)
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDoZeroRetryConfigKeepsDefaults(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var delays []time.Duration
	c := New(WithRetry(0, 0), recordingSleep(&delays))
	assert.Equal(t, 3, c.Attempts())
	_, err := Do(context.Background(), c, "test", srv.URL, nil, decodeReply)
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestDoCustomBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var delays []time.Duration
	c := New(WithRetry(4, 10*time.Millisecond), recordingSleep(&delays))
	_, err := Do(context.Background(), c, "test", srv.URL, nil, decodeReply)
	require.Error(t, err)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond}, delays)
}

func TestDoStopsWhenContextCancelledDuringWait(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := New(WithSleep(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}))

	_, err := Do(ctx, c, "test", srv.URL, nil, decodeReply)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDoUnencodablePayload(t *testing.T) {
	c := New()
	_, err := Do(context.Background(), c, "test", "http://127.0.0.1:0", make(chan int), decodeReply)
	require.Error(t, err)
	var exhausted *ExhaustedError
	assert.False(t, errors.As(err, &exhausted))
}
