package verify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agegate-bot/agegate/verify/statestore"
)

func mustState(t *testing.T, eng *Engine, userID string) statestore.UserState {
	t.Helper()
	st, err := eng.Store.Get(context.Background(), userID)
	assert.NoError(t, err)
	return st
}

func TestVerifyRequestAlreadyVerified(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, platform := EngineTestFixture()
	r := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "u1", RoleHolder: true, Responder: r}))

	assert.Equal([]string{"You are already verified."}, r.Replies)
	assert.Empty(platform.DMs)
	assert.Equal(statestore.UserState{}, mustState(t, eng, "u1"))
}

func TestVerifyThenAcceptFlow(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, platform := EngineTestFixture()

	// user A clicks Verify
	r1 := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "userA", Responder: r1}))
	assert.Equal([]string{"Your verification request has been submitted. Please check your DMs."}, r1.Replies)
	if assert.Len(platform.DMs, 1) {
		assert.Equal("userA", platform.DMs[0].UserID)
		assert.Contains(platform.DMs[0].Text, "18+")
	}

	// user A sends proof text via DM
	assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "userA", UserTag: "usera", Content: "I am 19"}))
	if assert.Len(platform.Reviews, 1) {
		assert.Equal("I am 19", platform.Reviews[0].Statement)
		assert.Equal("userA", platform.Reviews[0].UserID)
	}
	st := mustState(t, eng, "userA")
	assert.True(st.PendingSubmission)
	assert.Equal("review-1", st.ReviewMessageRef)

	// staff clicks Accept
	r2 := &CaptureResponder{}
	assert.NoError(eng.ProcessAccept(ctx, AcceptEvent{UserID: "userA", StaffID: "staff1", MessageRef: "review-1", Responder: r2}))
	assert.Equal([]string{"userA"}, platform.RolesAssigned)
	assert.Equal([]string{"review-1"}, platform.Deleted)
	if assert.Len(platform.Announcements, 1) {
		assert.Contains(platform.Announcements[0], "<@userA>")
		assert.Contains(platform.Announcements[0], "successfully verified")
	}
	if assert.Len(platform.DMs, 2) {
		assert.Contains(platform.DMs[1].Text, "accepted")
	}

	// state fully cleared
	assert.Equal(statestore.UserState{}, mustState(t, eng, "userA"))
}

func TestDuplicateSubmissionIgnored(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, platform := EngineTestFixture()
	r := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "u1", Responder: r}))
	assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "u1", Content: "proof"}))
	before := mustState(t, eng, "u1")

	assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "u1", Content: "proof again"}))

	// no new review artifact, no state change, one informational DM
	assert.Len(platform.Reviews, 1)
	assert.Equal(before, mustState(t, eng, "u1"))
	last := platform.DMs[len(platform.DMs)-1]
	assert.Contains(last.Text, "already submitted")
}

func TestDeclineOnceAllowsImmediateRetry(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, platform := EngineTestFixture()
	r := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "userB", Responder: r}))
	assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "userB", Content: "id photo"}))

	// staff opens the decline form: no state change yet
	r2 := &CaptureResponder{}
	assert.NoError(eng.ProcessDeclineStart(ctx, DeclineStartEvent{UserID: "userB", Responder: r2}))
	assert.Equal([]string{"userB"}, r2.DeclineForms)
	assert.True(mustState(t, eng, "userB").PendingSubmission)

	// reason comes back
	r3 := &CaptureResponder{}
	assert.NoError(eng.ProcessDeclineSubmit(ctx, DeclineSubmitEvent{UserID: "userB", StaffID: "staff1", Reason: "blurry id", Responder: r3}))
	assert.Equal([]string{"Decline recorded."}, r3.Replies)

	st := mustState(t, eng, "userB")
	assert.Equal(1, st.DeclineCount)
	assert.True(st.LockedAfterDecline)
	assert.False(st.PendingSubmission)
	assert.Empty(st.ReviewMessageRef)
	assert.Equal([]string{"review-1"}, platform.Deleted)
	if assert.Len(platform.Announcements, 1) {
		assert.Contains(platform.Announcements[0], "blurry id")
	}
	last := platform.DMs[len(platform.DMs)-1]
	assert.Contains(last.Text, "immediately")

	// DMs are rejected while locked
	assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "userB", Content: "wait"}))
	assert.Len(platform.Reviews, 1)
	last = platform.DMs[len(platform.DMs)-1]
	assert.Contains(last.Text, "click Verify again")

	// a single decline carries no cooldown: re-verify works immediately
	r4 := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "userB", Responder: r4}))
	assert.Equal([]string{"Your verification request has been submitted. Please check your DMs."}, r4.Replies)
	st = mustState(t, eng, "userB")
	assert.False(st.LockedAfterDecline)
	assert.Equal(1, st.DeclineCount)
}

func TestCooldownAfterTwoDeclines(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, _ := EngineTestFixture()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	eng.Now = func() time.Time { return now }

	seed := statestore.UserState{
		DeclineCount:       2,
		LastDeclineAt:      now.Add(-30 * time.Minute),
		LockedAfterDecline: true,
	}
	assert.NoError(eng.Store.Put(ctx, "userC", seed))

	// 30 minutes into the window: informational reply, no state change
	r1 := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "userC", Responder: r1}))
	assert.Equal([]string{"You must wait 23h 30m before trying again."}, r1.Replies)
	assert.Equal(seed, mustState(t, eng, "userC"))

	// 25 hours after the last decline: fresh cycle, counter reset
	now = now.Add(25 * time.Hour)
	r2 := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "userC", Responder: r2}))
	assert.Equal([]string{"Your verification request has been submitted. Please check your DMs."}, r2.Replies)
	st := mustState(t, eng, "userC")
	assert.Equal(0, st.DeclineCount)
	assert.True(st.LastDeclineAt.IsZero())
	assert.False(st.LockedAfterDecline)
}

func TestRepeatedDeclineMentionsCooldown(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, platform := EngineTestFixture()
	for i := 0; i < 2; i++ {
		r := &CaptureResponder{}
		assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "u1", Responder: r}))
		assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "u1", Content: fmt.Sprintf("try %d", i)}))
		rd := &CaptureResponder{}
		assert.NoError(eng.ProcessDeclineSubmit(ctx, DeclineSubmitEvent{UserID: "u1", StaffID: "staff1", Reason: "nope", Responder: rd}))
	}

	st := mustState(t, eng, "u1")
	assert.Equal(2, st.DeclineCount)
	assert.True(st.LockedAfterDecline)
	last := platform.DMs[len(platform.DMs)-1]
	assert.Contains(last.Text, "24 hours")
}

func TestAcceptPreconditionFailure(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, platform := EngineTestFixture()
	r := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "u1", Responder: r}))
	assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "u1", Content: "proof"}))
	before := mustState(t, eng, "u1")

	platform.AssignRoleErr = errors.New("Could not fetch the target member.")
	r2 := &CaptureResponder{}
	assert.NoError(eng.ProcessAccept(ctx, AcceptEvent{UserID: "u1", StaffID: "staff1", MessageRef: "review-1", Responder: r2}))

	// error relayed to staff, transition aborted, retryable
	assert.Equal([]string{"Could not fetch the target member."}, r2.Replies)
	assert.Empty(platform.RolesAssigned)
	assert.Empty(platform.Deleted)
	assert.Empty(platform.Announcements)
	assert.Equal(before, mustState(t, eng, "u1"))

	// staff re-clicks after fixing the problem
	platform.AssignRoleErr = nil
	r3 := &CaptureResponder{}
	assert.NoError(eng.ProcessAccept(ctx, AcceptEvent{UserID: "u1", StaffID: "staff1", MessageRef: "review-1", Responder: r3}))
	assert.Equal([]string{"u1"}, platform.RolesAssigned)
	assert.Equal(statestore.UserState{}, mustState(t, eng, "u1"))
}

func TestDMFailureFallbackReply(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, platform := EngineTestFixture()
	platform.FailDM = true
	r := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "u1", Responder: r}))

	// acknowledgment first, then the visible fallback
	if assert.Len(r.Replies, 2) {
		assert.Contains(r.Replies[1], "enable DMs")
	}
	// the cycle still started
	st := mustState(t, eng, "u1")
	assert.False(st.LockedAfterDecline)
}

func TestReviewPostFailureRollsBack(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, platform := EngineTestFixture()
	r := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "u1", Responder: r}))

	platform.FailReview = true
	assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "u1", Content: "proof"}))

	st := mustState(t, eng, "u1")
	assert.False(st.PendingSubmission)
	assert.Empty(st.ReviewMessageRef)

	// user can resend once the channel is back
	platform.FailReview = false
	assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "u1", Content: "proof"}))
	assert.Len(platform.Reviews, 1)
	assert.True(mustState(t, eng, "u1").PendingSubmission)
}

// The lock and the pending-submission flag are mutually exclusive across
// every transition of the workflow.
func TestLockAndPendingNeverBothSet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng, _ := EngineTestFixture()
	check := func(stage string) {
		st := mustState(t, eng, "u1")
		assert.False(st.PendingSubmission && st.LockedAfterDecline, "both flags set after %s", stage)
	}

	r := &CaptureResponder{}
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "u1", Responder: r}))
	check("verify_request")
	assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "u1", Content: "proof"}))
	check("submission")
	assert.NoError(eng.ProcessDeclineSubmit(ctx, DeclineSubmitEvent{UserID: "u1", StaffID: "s", Reason: "no", Responder: &CaptureResponder{}}))
	check("decline")
	assert.NoError(eng.ProcessVerifyRequest(ctx, VerifyRequestEvent{UserID: "u1", Responder: &CaptureResponder{}}))
	check("re-verify")
	assert.NoError(eng.ProcessSubmission(ctx, SubmissionEvent{UserID: "u1", Content: "proof"}))
	check("re-submission")
	assert.NoError(eng.ProcessAccept(ctx, AcceptEvent{UserID: "u1", StaffID: "s", Responder: &CaptureResponder{}}))
	check("accept")
}
