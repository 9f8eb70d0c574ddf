package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadscout/leadscout/pkg/domain"
)

func TestConsumerRepository_ListActive(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repos.Consumer.Upsert(ctx, domain.Consumer{
		ID:             "c1",
		Keywords:       []string{"crm", "lead gen"},
		ProfileText:    "we sell a CRM for small agencies",
		ContactChannel: "owner@example.com",
		Subscriptions:  []string{"smallbusiness", "startups"},
	}))
	require.NoError(t, repos.Consumer.Upsert(ctx, domain.Consumer{
		ID:            "c2",
		Keywords:      []string{"analytics"},
		Subscriptions: []string{"startups"},
	}))

	consumers, err := repos.Consumer.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, consumers, 2)

	assert.Equal(t, "c1", consumers[0].ID)
	assert.Equal(t, []string{"crm", "lead gen"}, consumers[0].Keywords)
	assert.Equal(t, "we sell a CRM for small agencies", consumers[0].ProfileText)
	assert.Equal(t, "owner@example.com", consumers[0].ContactChannel)
	assert.Equal(t, []string{"smallbusiness", "startups"}, consumers[0].Subscriptions)
}

func TestConsumerRepository_ListForFeed(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repos.Consumer.Upsert(ctx, domain.Consumer{ID: "c1", Subscriptions: []string{"golang", "startups"}}))
	require.NoError(t, repos.Consumer.Upsert(ctx, domain.Consumer{ID: "c2", Subscriptions: []string{"startups"}}))
	require.NoError(t, repos.Consumer.Upsert(ctx, domain.Consumer{ID: "c3", Subscriptions: nil}))

	matched, err := repos.Consumer.ListForFeed(ctx, "golang")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "c1", matched[0].ID)

	matched, err = repos.Consumer.ListForFeed(ctx, "startups")
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	matched, err = repos.Consumer.ListForFeed(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestConsumerRepository_UpsertReplaces(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repos.Consumer.Upsert(ctx, domain.Consumer{ID: "c1", Keywords: []string{"old"}}))
	require.NoError(t, repos.Consumer.Upsert(ctx, domain.Consumer{ID: "c1", Keywords: []string{"new"}}))

	consumers, err := repos.Consumer.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, consumers, 1)
	assert.Equal(t, []string{"new"}, consumers[0].Keywords)
}

func TestHeartbeatRepository_Upsert(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Heartbeat.Upsert(ctx, first, 3))

	hb, err := repos.Heartbeat.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "worker", hb.ID)
	assert.Equal(t, first, hb.LastRunAt.UTC())
	assert.Equal(t, 3, hb.ActiveResources)

	// second upsert replaces the single row
	second := first.Add(30 * time.Minute)
	require.NoError(t, repos.Heartbeat.Upsert(ctx, second, 2))

	hb, err = repos.Heartbeat.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, hb.LastRunAt.UTC())
	assert.Equal(t, 2, hb.ActiveResources)
}

func TestHeartbeatRepository_Get_Empty(t *testing.T) {
	repos := setupTestDB(t)

	// no heartbeat before the first cycle completes
	hb, err := repos.Heartbeat.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, hb)
}
