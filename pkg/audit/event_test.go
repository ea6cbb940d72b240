package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/homedash/pkg/editlock"
)

var testTime = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func testRecord(owner, name, conn string) *editlock.Record {
	return &editlock.Record{
		DashboardID:  42,
		OwnerID:      owner,
		OwnerName:    name,
		ConnectionID: conn,
		AcquiredAt:   testTime,
		LastActivity: testTime,
	}
}

func TestNewEvent(t *testing.T) {
	alice := testRecord("U1", "Alice", "c1")
	bob := testRecord("U2", "Bob", "c2")

	tests := []struct {
		name      string
		change    editlock.Change
		wantKind  Kind
		wantOwner string
		wantConn  string
		wantPrev  string
	}{
		{
			name:      "acquired",
			change:    editlock.Change{DashboardID: 42, Record: alice, Reason: editlock.ReasonAcquired},
			wantKind:  KindAcquired,
			wantOwner: "U1",
			wantConn:  "c1",
		},
		{
			name:      "taken over",
			change:    editlock.Change{DashboardID: 42, Record: bob, Previous: alice, Reason: editlock.ReasonTakenOver},
			wantKind:  KindTakenOver,
			wantOwner: "U2",
			wantConn:  "c2",
			wantPrev:  "U1",
		},
		{
			name:      "released",
			change:    editlock.Change{DashboardID: 42, Previous: alice, Reason: editlock.ReasonReleased},
			wantKind:  KindReleased,
			wantOwner: "U1",
			wantConn:  "c1",
		},
		{
			name:      "expired",
			change:    editlock.Change{DashboardID: 42, Previous: bob, Reason: editlock.ReasonExpired},
			wantKind:  KindExpired,
			wantOwner: "U2",
			wantConn:  "c2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvent(tt.change, testTime)
			_, err := uuid.Parse(e.ID)
			require.NoError(t, err)
			assert.Equal(t, testTime, e.Timestamp)
			assert.Equal(t, int64(42), e.DashboardID)
			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.wantOwner, e.OwnerID)
			assert.Equal(t, tt.wantConn, e.ConnectionID)
			assert.Equal(t, tt.wantPrev, e.PreviousOwnerID)
		})
	}
}

func TestNewEvent_EmptyChange(t *testing.T) {
	e := NewEvent(editlock.Change{DashboardID: 7, Reason: editlock.ReasonReleased}, testTime)
	assert.Empty(t, e.OwnerID)
	assert.Equal(t, int64(7), e.DashboardID)
}

func TestValidKinds(t *testing.T) {
	for _, k := range []Kind{"acquired", "taken_over", "released", "expired"} {
		assert.True(t, ValidKinds[k], k)
	}
	assert.False(t, ValidKinds["stolen"])
}

func TestClampBreakdownLimit(t *testing.T) {
	assert.Equal(t, DefaultBreakdownLimit, ClampBreakdownLimit(0))
	assert.Equal(t, DefaultBreakdownLimit, ClampBreakdownLimit(-3))
	assert.Equal(t, 5, ClampBreakdownLimit(5))
	assert.Equal(t, MaxBreakdownLimit, ClampBreakdownLimit(500))
}
