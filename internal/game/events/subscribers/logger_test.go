package subscribers_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridmind/minesweeper-agent/internal/game/core"
	"github.com/gridmind/minesweeper-agent/internal/game/events"
	"github.com/gridmind/minesweeper-agent/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	// Create a buffer to capture log output
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	// Create logger subscriber
	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	// Test ID
	assert.Equal(t, "test-logger", logSub.ID())

	// Test InterestedIn - should be interested in all events by default
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeMineDeduced))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name: "GameStartedEvent",
			event: &events.GameStartedEvent{
				BaseEvent: events.BaseEvent{
					EventType: events.TypeGameStarted,
					Time:      time.Now(),
					Game:      "test-game-1",
				},
				Width:  8,
				Height: 8,
				Mines:  8,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Game event", logLine["message"])
				assert.Equal(t, "test-game-1", logLine["game_id"])
				assert.Equal(t, float64(8), logLine["width"])
				assert.Equal(t, float64(8), logLine["mines"])
			},
		},
		{
			name:  "MineDeducedEvent",
			event: events.NewMineDeducedEvent("test-game-2", core.NewCell(2, 3)),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, events.TypeMineDeduced, logLine["event_type"])
				assert.Equal(t, "(2,3)", logLine["cell"])
			},
		},
		{
			name:  "MovePlayedEvent",
			event: events.NewMovePlayedEvent("test-game-3", core.NewCell(0, 0), events.StrategySafe, 4),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, events.StrategySafe, logLine["strategy"])
				assert.Equal(t, float64(4), logLine["move"])
			},
		},
		{
			name:  "SentenceDerivedEvent",
			event: events.NewSentenceDerivedEvent("test-game-4", "{(0,2)} = 1", 1, 1),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "{(0,2)} = 1", logLine["sentence"])
				assert.Equal(t, float64(1), logLine["count"])
			},
		},
		{
			name:  "StateTransitionEvent",
			event: events.NewStateTransitionEvent("test-game-5", "Running", "Won", "all mines flagged"),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Running", logLine["from_phase"])
				assert.Equal(t, "Won", logLine["to_phase"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("event-logger", zerolog.New(&buf), zerolog.InfoLevel)

			logSub.HandleEvent(tc.event)

			line := strings.TrimSpace(buf.String())
			require.NotEmpty(t, line)

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(line), &logLine))
			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberEventFilter(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("filtered", zerolog.New(&buf), zerolog.DebugLevel)

	logSub.SetEventFilter([]string{events.TypeMineDeduced, events.TypeSafeDeduced})

	assert.True(t, logSub.InterestedIn(events.TypeMineDeduced))
	assert.True(t, logSub.InterestedIn(events.TypeSafeDeduced))
	assert.False(t, logSub.InterestedIn(events.TypeSentenceAdded))

	// Clearing the filter restores interest in everything
	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeSentenceAdded))
}
