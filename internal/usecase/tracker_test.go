package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalrepo "BasketNa/internal/repository"
)

func newTestTracker(tracked *fakeTrackedStore, sessions *fakeSessionStore, activity *fakeActivityStore, q *fakeQueue) *Tracker {
	return NewTracker(
		internalrepo.NewStaticCatalogWith(testProducts),
		tracked,
		sessions,
		activity,
		q,
		24*time.Hour,
		newFakeMetrics(),
	)
}

func TestTrackUnknownProduct(t *testing.T) {
	tr := newTestTracker(newFakeTrackedStore(), newFakeSessionStore(), newFakeActivityStore(), &fakeQueue{})

	_, err := tr.Track(context.Background(), "u1", "P999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestTrackEnqueuesRefresh(t *testing.T) {
	q := &fakeQueue{}
	tr := newTestTracker(newFakeTrackedStore(), newFakeSessionStore(), newFakeActivityStore(), q)

	item, err := tr.Track(context.Background(), "u1", "P001")
	require.NoError(t, err)

	assert.Equal(t, "u1", item.UserID)
	assert.Equal(t, "P001", item.ProductID)
	require.Len(t, q.messages, 1)
	assert.Equal(t, PriceRefreshType, q.messages[0].Type)
	assert.Equal(t, PriceRefreshPayload{ProductID: "P001"}, q.messages[0].Payload)
}

func TestRecordViewAttachesCategory(t *testing.T) {
	activity := newFakeActivityStore()
	tr := newTestTracker(newFakeTrackedStore(), newFakeSessionStore(), activity, &fakeQueue{})

	err := tr.RecordView(context.Background(), "u1", "", "P003")
	require.NoError(t, err)

	require.Len(t, activity.events, 1)
	ev := activity.events[0]
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "Headphones", ev.Category)
	assert.Equal(t, "u1", ev.UserID)
}

func TestRecordViewUnknownProduct(t *testing.T) {
	tr := newTestTracker(newFakeTrackedStore(), newFakeSessionStore(), newFakeActivityStore(), &fakeQueue{})

	err := tr.RecordView(context.Background(), "u1", "", "P999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	sessions := newFakeSessionStore()
	tr := newTestTracker(newFakeTrackedStore(), sessions, newFakeActivityStore(), &fakeQueue{})

	session, err := tr.CreateSession(context.Background())
	require.NoError(t, err)
	assert.True(t, session.ExpiresAt.After(session.CreatedAt))

	ok, err := tr.SessionExists(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tr.SessionExists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
