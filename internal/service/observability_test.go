package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(zerolog.New(&buf))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "day-schedule",
		Duration: 3 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"day": "2025-06-15"},
	})
	out := buf.String()
	assert.Contains(t, out, `"use_case":"day-schedule"`)
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"day":"2025-06-15"`)
	assert.Contains(t, out, `"component":"service"`)

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "auto-fill", Err: errors.New("boom")})
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))

	a, b := &recordingObserver{}, &recordingObserver{}
	assert.Same(t, a, useCaseObserverOrNoop([]UseCaseObserver{nil, a}))

	fan := useCaseObserverOrNoop([]UseCaseObserver{a, nil, b})
	fan.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
