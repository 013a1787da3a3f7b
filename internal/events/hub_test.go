package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/backend/internal/countdown"
	"showcase/backend/internal/events"
)

func TestHub_DeliversToOwnerOnly(t *testing.T) {
	hub := events.NewHub(4)
	alice, stopAlice := hub.Subscribe("alice")
	defer stopAlice()
	bob, stopBob := hub.Subscribe("bob")
	defer stopBob()

	hub.TimerTick("alice", "t1", countdown.Breakdown{Days: 1, Seconds: 5})
	hub.TimerCompleted("alice", "t1", "Launch")

	tick := <-alice
	assert.Equal(t, events.KindTick, tick.Kind)
	require.NotNil(t, tick.Remaining)
	assert.Equal(t, countdown.Display{Days: "01", Hours: "00", Minutes: "00", Seconds: "05"}, *tick.Remaining)

	done := <-alice
	assert.Equal(t, events.KindCompleted, done.Kind)
	assert.Equal(t, "Launch", done.Name)
	assert.Equal(t, `"Launch" has reached zero!`, done.Message)

	assert.Empty(t, bob)
}

func TestHub_PublishDoesNotBlockOnFullBuffer(t *testing.T) {
	hub := events.NewHub(1)
	ch, stop := hub.Subscribe("alice")
	defer stop()

	for i := 0; i < 10; i++ {
		hub.TimerTick("alice", "t1", countdown.Breakdown{Seconds: i})
	}

	assert.Len(t, ch, 1)
	first := <-ch
	assert.Equal(t, "00", first.Remaining.Seconds)
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := events.NewHub(1)
	ch, stop := hub.Subscribe("alice")
	require.Equal(t, 1, hub.Subscribers("alice"))

	stop()
	stop()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, hub.Subscribers("alice"))

	hub.TimerCompleted("alice", "t1", "nobody listening")
}

func TestHub_CompletionMessageKeepsNameVerbatim(t *testing.T) {
	assert.Equal(t, `"Mom's "big" day" has reached zero!`, events.CompletionMessage(`Mom's "big" day`))
}

func TestHub_CloseEndsSubscriptions(t *testing.T) {
	hub := events.NewHub(1)
	alice, stopAlice := hub.Subscribe("alice")
	bob, _ := hub.Subscribe("bob")

	hub.Close()

	_, open := <-alice
	assert.False(t, open)
	_, open = <-bob
	assert.False(t, open)
	assert.Zero(t, hub.Subscribers("alice"))

	stopAlice()
	hub.TimerTick("alice", "t1", countdown.Breakdown{Seconds: 1})

	late, stopLate := hub.Subscribe("alice")
	defer stopLate()
	_, open = <-late
	assert.False(t, open)
}
