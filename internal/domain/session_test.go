package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestSessionState_String(t *testing.T) {
	tests := []struct {
		state SessionState
		want  string
	}{
		{SessionIdle, "Idle"},
		{SessionRunning, "Running"},
		{SessionCompleted, "Completed"},
		{SessionCancelled, "Cancelled"},
		{SessionFailed, "Failed"},
		{SessionState(42), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.state.String(), tt.want)
	}
}

func TestSessionState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to SessionState
		want     bool
	}{
		{SessionIdle, SessionRunning, true},
		{SessionIdle, SessionCancelled, true},
		{SessionIdle, SessionCompleted, false},
		{SessionRunning, SessionCompleted, true},
		{SessionRunning, SessionCancelled, true},
		{SessionRunning, SessionFailed, true},
		{SessionRunning, SessionIdle, false},
		{SessionCompleted, SessionRunning, false},
		{SessionCancelled, SessionFailed, false},
		{SessionFailed, SessionCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.from.CanTransitionTo(tt.to), tt.want)
		})
	}
}

func TestFormatProgress(t *testing.T) {
	p := Progress{Record: "beta", Elapsed: 1250 * time.Millisecond}
	assert.Equal(t, FormatProgress(p), "[1.250] beta")

	p = Progress{Record: "alpha"}
	assert.Equal(t, FormatProgress(p), "[0.000] alpha")
}

func TestIntervalFromSeconds(t *testing.T) {
	d, err := IntervalFromSeconds(0.5)
	if err != nil {
		t.Fatalf("IntervalFromSeconds() error = %v", err)
	}
	assert.Equal(t, d, 500*time.Millisecond)

	d, err = IntervalFromSeconds(0)
	if err != nil {
		t.Fatalf("IntervalFromSeconds(0) error = %v", err)
	}
	assert.Equal(t, d, time.Duration(0))

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1), 1e300} {
		if _, err := IntervalFromSeconds(bad); !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("IntervalFromSeconds(%v) error = %v, want ErrInvalidInterval", bad, err)
		}
	}
}

func TestTransmissionConfig_Validate(t *testing.T) {
	dst, _ := NewDestination("127.0.0.1", DefaultPort)

	if err := (TransmissionConfig{Destination: dst}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := (TransmissionConfig{}).Validate(); !errors.Is(err, ErrInvalidDestination) {
		t.Errorf("Validate() without destination = %v, want ErrInvalidDestination", err)
	}
	if err := (TransmissionConfig{Destination: dst, Interval: -time.Second}).Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Validate() negative interval = %v, want ErrInvalidInterval", err)
	}
}

func TestIsConfigError(t *testing.T) {
	assert.Equal(t, IsConfigError(ErrNotFound), true)
	assert.Equal(t, IsConfigError(ErrInvalidInterval), true)
	assert.Equal(t, IsConfigError(fmt.Errorf("wrap: %w", ErrInvalidConfig)), true)
	assert.Equal(t, IsConfigError(ErrSend), false)
}
