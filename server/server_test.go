package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadscout/leadscout/pkg/domain"
	"github.com/leadscout/leadscout/server/mocks"
)

func testServer(feeds *mocks.FeedReaderMock, leads *mocks.LeadReaderMock, hb *mocks.HeartbeatReaderMock) *Server {
	return New(Params{
		Feeds:     feeds,
		Leads:     leads,
		Heartbeat: hb,
		Listen:    ":0",
		Timeout:   time.Second,
		Version:   "test",
	})
}

func TestServer_StatusHandler(t *testing.T) {
	lastRun := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	suspended := lastRun.Add(2 * time.Hour)

	feeds := &mocks.FeedReaderMock{
		ListAllFunc: func(ctx context.Context) ([]domain.Feed, error) {
			return []domain.Feed{
				{Name: "golang", Watermark: lastRun.Add(-time.Hour)},
				{Name: "startups", ErrorStreak: 4, SuspendedUntil: &suspended},
			}, nil
		},
	}
	leads := &mocks.LeadReaderMock{
		CountFunc: func(ctx context.Context) (int, error) { return 12, nil },
	}
	hb := &mocks.HeartbeatReaderMock{
		GetFunc: func(ctx context.Context) (*domain.Heartbeat, error) {
			return &domain.Heartbeat{ID: "worker", LastRunAt: lastRun, ActiveResources: 2}, nil
		},
	}

	srv := testServer(feeds, leads, hb)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
	require.NotNil(t, resp.LastRunAt)
	assert.Equal(t, lastRun, resp.LastRunAt.UTC())
	assert.Equal(t, 2, resp.ActiveResources)
	assert.Equal(t, 12, resp.TotalLeads)
	require.Len(t, resp.Feeds, 2)
	assert.Equal(t, "golang", resp.Feeds[0].Name)
	assert.Equal(t, 4, resp.Feeds[1].ErrorStreak)
	require.NotNil(t, resp.Feeds[1].SuspendedUntil)
}

func TestServer_StatusHandler_NoHeartbeatYet(t *testing.T) {
	feeds := &mocks.FeedReaderMock{
		ListAllFunc: func(ctx context.Context) ([]domain.Feed, error) { return nil, nil },
	}
	leads := &mocks.LeadReaderMock{
		CountFunc: func(ctx context.Context) (int, error) { return 0, nil },
	}
	hb := &mocks.HeartbeatReaderMock{
		GetFunc: func(ctx context.Context) (*domain.Heartbeat, error) { return nil, nil },
	}

	srv := testServer(feeds, leads, hb)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Nil(t, resp.LastRunAt)
	assert.Empty(t, resp.Feeds)
}

func TestServer_StatusHandler_StoreError(t *testing.T) {
	feeds := &mocks.FeedReaderMock{
		ListAllFunc: func(ctx context.Context) ([]domain.Feed, error) { return nil, errors.New("db gone") },
	}
	leads := &mocks.LeadReaderMock{
		CountFunc: func(ctx context.Context) (int, error) { return 0, nil },
	}
	hb := &mocks.HeartbeatReaderMock{
		GetFunc: func(ctx context.Context) (*domain.Heartbeat, error) { return nil, nil },
	}

	srv := testServer(feeds, leads, hb)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestServer_LeadsHandler(t *testing.T) {
	leads := &mocks.LeadReaderMock{
		GetByConsumerFunc: func(ctx context.Context, consumerID string, limit int) ([]domain.Lead, error) {
			assert.Equal(t, "crm-vendor", consumerID)
			assert.Equal(t, 10, limit)
			return []domain.Lead{
				{ID: 1, ConsumerID: "crm-vendor", ExternalID: "p1", Title: "need a CRM", RelevanceScore: 0.91},
			}, nil
		},
		CountFunc: func(ctx context.Context) (int, error) { return 1, nil },
	}

	srv := testServer(&mocks.FeedReaderMock{}, leads, &mocks.HeartbeatReaderMock{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads?consumer=crm-vendor&limit=10", http.NoBody)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got []domain.Lead
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ExternalID)
}

func TestServer_LeadsHandler_BadRequests(t *testing.T) {
	tbl := []struct {
		name string
		url  string
	}{
		{"missing consumer", "/api/v1/leads"},
		{"bad limit", "/api/v1/leads?consumer=c1&limit=abc"},
		{"negative limit", "/api/v1/leads?consumer=c1&limit=-5"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(&mocks.FeedReaderMock{}, &mocks.LeadReaderMock{}, &mocks.HeartbeatReaderMock{})
			req := httptest.NewRequest(http.MethodGet, tt.url, http.NoBody)
			rr := httptest.NewRecorder()
			srv.router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestServer_LeadsHandler_EmptyResult(t *testing.T) {
	leads := &mocks.LeadReaderMock{
		GetByConsumerFunc: func(ctx context.Context, consumerID string, limit int) ([]domain.Lead, error) {
			return nil, nil
		},
	}

	srv := testServer(&mocks.FeedReaderMock{}, leads, &mocks.HeartbeatReaderMock{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads?consumer=c1", http.NoBody)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestServer_Ping(t *testing.T) {
	srv := testServer(&mocks.FeedReaderMock{}, &mocks.LeadReaderMock{}, &mocks.HeartbeatReaderMock{})
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestServer_RunAndShutdown(t *testing.T) {
	srv := testServer(&mocks.FeedReaderMock{}, &mocks.LeadReaderMock{}, &mocks.HeartbeatReaderMock{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
