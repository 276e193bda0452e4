package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/bft-labs/linecast/internal/domain"
	"github.com/bft-labs/linecast/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// mockChannel records datagrams and can fail on a given send.
type mockChannel struct {
	mu      sync.Mutex
	opens   int
	closes  int
	closed  bool
	sent    []string
	failAt  int // 1-based send number that fails; 0 never fails
	sendHit chan struct{}
}

func newMockChannel() *mockChannel {
	return &mockChannel{sendHit: make(chan struct{}, 1024)}
}

func (m *mockChannel) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrAlreadyClosed
	}
	m.opens++
	return nil
}

func (m *mockChannel) Send(dst domain.Destination, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrAlreadyClosed
	}
	if m.failAt > 0 && len(m.sent)+1 == m.failAt {
		return fmt.Errorf("%w: network unreachable", domain.ErrSend)
	}
	m.sent = append(m.sent, string(payload))
	select {
	case m.sendHit <- struct{}{}:
	default:
	}
	return nil
}

func (m *mockChannel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	m.closed = true
	return nil
}

func (m *mockChannel) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.sent...)
}

func (m *mockChannel) Counts() (opens, closes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opens, m.closes
}

// blockingPacer waits until released or cancelled.
type blockingPacer struct {
	release chan struct{}
}

func newBlockingPacer() *blockingPacer {
	return &blockingPacer{release: make(chan struct{}, 1024)}
}

func (p *blockingPacer) Wait(ctx context.Context) error {
	select {
	case <-p.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// deafPacer ignores cancellation until released.
type deafPacer struct {
	release chan struct{}
}

func (p *deafPacer) Wait(ctx context.Context) error {
	<-p.release
	return ctx.Err()
}

// mockObserver records notifications.
type mockObserver struct {
	mu       sync.Mutex
	started  []domain.SessionStatus
	progress []domain.Progress
	ended    []domain.SessionStatus
}

func (o *mockObserver) OnSessionStart(st domain.SessionStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, st)
}

func (o *mockObserver) OnProgress(p domain.Progress) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.progress = append(o.progress, p)
}

func (o *mockObserver) OnSessionEnd(st domain.SessionStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ended = append(o.ended, st)
}

func (o *mockObserver) Ended() []domain.SessionStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]domain.SessionStatus{}, o.ended...)
}

func (o *mockObserver) Progress() []domain.Progress {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]domain.Progress{}, o.progress...)
}

func testDestination() domain.Destination {
	d, err := domain.NewDestination("127.0.0.1", domain.DefaultPort)
	if err != nil {
		panic(err)
	}
	return d
}

func testConfig(lines ...string) domain.TransmissionConfig {
	return domain.TransmissionConfig{
		Destination: testDestination(),
		Source:      domain.NewRecordSequence(lines),
		File:        "test.txt",
	}
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// mockReports keeps saved reports in memory.
type mockReports struct {
	mu    sync.Mutex
	saved []domain.SessionReport
	err   error
}

func (r *mockReports) Load(ctx context.Context) (domain.SessionReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saved) == 0 {
		return domain.SessionReport{}, nil
	}
	return r.saved[len(r.saved)-1], nil
}

func (r *mockReports) Save(ctx context.Context, report domain.SessionReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, report)
	return nil
}
