package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
)

type captureRepo struct {
	mu      sync.Mutex
	events  []domain.AuditEvent
	ctxErrs []error
}

func (r *captureRepo) Insert(ctx context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	return nil
}

func (r *captureRepo) byKind(kind string) []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuditEvent
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestDispatcher_WritesAllEvents(t *testing.T) {
	repo := &captureRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 50; i++ {
		d.Record(domain.AuditEvent{
			Kind:      "contact",
			Action:    domain.AuditSubmissionAccepted,
			Timestamp: time.Now().UTC(),
		})
	}
	d.Close()

	if got := len(repo.byKind("contact")); got != 50 {
		t.Fatalf("expected 50 events written, got %d", got)
	}
}

func TestDispatcher_PreservesPerKindOrder(t *testing.T) {
	repo := &captureRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(context.Background())

	for i := int64(1); i <= 20; i++ {
		d.Record(domain.AuditEvent{Kind: "testimonial", SubmissionID: i})
	}
	d.Close()

	events := repo.byKind("testimonial")
	if len(events) != 20 {
		t.Fatalf("expected 20 events, got %d", len(events))
	}
	for i, e := range events {
		if e.SubmissionID != int64(i+1) {
			t.Fatalf("event %d out of order: got submission id %d", i, e.SubmissionID)
		}
	}
}

func TestDispatcher_CloseDrains(t *testing.T) {
	repo := &captureRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 10; i++ {
		d.Record(domain.AuditEvent{Kind: "project", Action: domain.AuditRecordCreated})
	}
	d.Close()

	if got := len(repo.byKind("project")); got != 10 {
		t.Fatalf("close must drain queued events, got %d of 10", got)
	}
}

func TestDispatcher_DrainsAfterShutdownSignal(t *testing.T) {
	repo := &captureRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	for i := 0; i < 5; i++ {
		d.Record(domain.AuditEvent{Kind: "contact", Action: domain.AuditStatusUpdated})
	}
	d.Close()

	if got := len(repo.byKind("contact")); got != 5 {
		t.Fatalf("expected 5 events drained after cancellation, got %d", got)
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i, err := range repo.ctxErrs {
		if err != nil {
			t.Fatalf("drained write %d ran on a cancelled context: %v", i, err)
		}
	}
}
