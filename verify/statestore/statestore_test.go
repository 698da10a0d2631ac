package statestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemStateStoreBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	ss := NewMemStateStore()

	st, err := ss.Get(ctx, "user123")
	assert.NoError(err)
	assert.Equal(UserState{}, st)

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	st.PendingSubmission = true
	st.DeclineCount = 1
	st.LastDeclineAt = when
	assert.NoError(ss.Put(ctx, "user123", st))

	got, err := ss.Get(ctx, "user123")
	assert.NoError(err)
	assert.True(got.PendingSubmission)
	assert.Equal(1, got.DeclineCount)
	assert.Equal(when, got.LastDeclineAt)

	// other users are unaffected
	other, err := ss.Get(ctx, "user456")
	assert.NoError(err)
	assert.Equal(UserState{}, other)

	assert.NoError(ss.Delete(ctx, "user123"))
	got, err = ss.Get(ctx, "user123")
	assert.NoError(err)
	assert.Equal(UserState{}, got)

	// deleting an absent user is a no-op
	assert.NoError(ss.Delete(ctx, "user789"))
}
