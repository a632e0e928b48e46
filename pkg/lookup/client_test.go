package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/lookup/citizen", r.URL.Path)
		assert.Equal(t, "anna smi", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"code":200,"message":"Success lookup","data":{"kind":"citizen","query":"anna smi","candidates":[{"id":"c1","label":"Anna Smith","fields":{"phone":"555-0178"}}],"cached":false}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok")
	got, err := c.Func("citizen", 5)(context.Background(), "anna smi")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "Anna Smith", got[0].Label)
	assert.Equal(t, "555-0178", got[0].Fields["phone"])
}

func TestClient_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"code":200,"message":"Success lookup","data":{"kind":"officer","query":"zz","candidates":null}}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "").Lookup(context.Background(), "officer", "zz", 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClient_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, `{"success":false,"code":401,"message":"Unauthorized"}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnauthorized)
		}},
		{"forbidden", http.StatusForbidden, ``, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnauthorized)
		}},
		{"not found", http.StatusNotFound, `{"success":false,"code":404,"message":"unknown lookup kind"}`, func(t *testing.T, err error) {
			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, 404, se.Code)
			assert.Equal(t, "unknown lookup kind", se.Message)
		}},
		{"plain text 502", http.StatusBadGateway, "upstream down", func(t *testing.T, err error) {
			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "upstream down", se.Message)
		}},
		{"garbage 200", http.StatusOK, "<html>", func(t *testing.T, err error) {
			assert.Contains(t, err.Error(), "failed to decode response")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "tok").Lookup(context.Background(), "citizen", "ann", 0)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestClient_HonorsCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := NewClient(srv.URL, "").Lookup(ctx, "citizen", "ann", 0)
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("lookup did not return after cancel")
	}
}
