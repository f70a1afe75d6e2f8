package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubTestimonialRepo struct {
	testimonials []*domain.Testimonial
	nextID       int64
	createErr    error
}

func newStubTestimonialRepo() *stubTestimonialRepo {
	return &stubTestimonialRepo{nextID: 1}
}

func (r *stubTestimonialRepo) Create(_ context.Context, t *domain.Testimonial) error {
	if r.createErr != nil {
		return r.createErr
	}
	t.ID = r.nextID
	r.nextID++
	clone := *t
	r.testimonials = append(r.testimonials, &clone)
	return nil
}

func (r *stubTestimonialRepo) FindRecentByClientName(_ context.Context, clientName string, since time.Time) (*domain.Testimonial, error) {
	for _, t := range r.testimonials {
		if t.ClientName == clientName && !t.CreatedAt.Before(since) {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTestimonialNotFound
}

func (r *stubTestimonialRepo) ListApproved(_ context.Context, featuredOnly bool, limit int) ([]*domain.Testimonial, error) {
	var matched []*domain.Testimonial
	for _, t := range r.testimonials {
		if !t.Approved {
			continue
		}
		if featuredOnly && !t.Featured {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	// Featured first, then newest first (mirrors the real Mongo sort).
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Featured != matched[j].Featured {
			return matched[i].Featured
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *stubTestimonialRepo) List(_ context.Context, f ports.TestimonialListFilter) ([]*domain.Testimonial, int64, error) {
	var matched []*domain.Testimonial
	for _, t := range r.testimonials {
		if f.Approved != nil && t.Approved != *f.Approved {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return nil, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubTestimonialRepo) UpdateApproval(_ context.Context, id int64, approved bool, featured *bool) (*domain.Testimonial, error) {
	for _, t := range r.testimonials {
		if t.ID == id {
			t.Approved = approved
			if featured != nil {
				t.Featured = *featured
			}
			t.UpdatedAt = time.Now().UTC()
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTestimonialNotFound
}

func (r *stubTestimonialRepo) Delete(_ context.Context, id int64) error {
	for i, t := range r.testimonials {
		if t.ID == id {
			r.testimonials = append(r.testimonials[:i], r.testimonials[i+1:]...)
			return nil
		}
	}
	return domain.ErrTestimonialNotFound
}

func (r *stubTestimonialRepo) Summary(_ context.Context) (*domain.TestimonialSummary, error) {
	s := &domain.TestimonialSummary{Total: int64(len(r.testimonials))}
	var ratingSum, ratingCount int64
	for _, t := range r.testimonials {
		if t.Approved {
			s.Approved++
			ratingSum += int64(t.Rating)
			ratingCount++
		} else {
			s.Pending++
		}
		if t.Featured {
			s.Featured++
		}
	}
	if ratingCount > 0 {
		s.AverageRating = float64(ratingSum) / float64(ratingCount)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validTestimonial() ports.TestimonialSubmission {
	return ports.TestimonialSubmission{
		ClientName:  "Jane O'Neill",
		Company:     "Acme Corp",
		Role:        "CTO",
		ProjectType: "web-development",
		Rating:      5,
		Testimonial: "Outstanding work from start to finish, highly recommended.",
		Meta:        ports.RequestMeta{IP: "203.0.113.9", UserAgent: "test"},
	}
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestTestimonialService_Submit_Success(t *testing.T) {
	repo := newStubTestimonialRepo()
	audit := &stubAudit{}
	svc := NewTestimonialService(repo, audit, discardLogger)

	result, err := svc.Submit(context.Background(), validTestimonial())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID == 0 {
		t.Error("expected a non-zero id")
	}
	stored := repo.testimonials[0]
	if stored.Approved || stored.Featured {
		t.Error("new testimonials must start unapproved and unfeatured")
	}
	if audit.lastAction() != domain.AuditSubmissionAccepted {
		t.Errorf("expected accepted audit event, got %q", audit.lastAction())
	}
}

func TestTestimonialService_Submit_StripsHTML(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := NewTestimonialService(repo, &stubAudit{}, discardLogger)

	in := validTestimonial()
	in.Company = "<i>Acme Corp</i>"
	in.Testimonial = "Outstanding work from start to finish.<script src='x'>steal()</script> Highly recommended."

	if _, err := svc.Submit(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := repo.testimonials[0]
	if stored.Company != "Acme Corp" {
		t.Errorf("markup not stripped from company: %q", stored.Company)
	}
	if stored.Testimonial != "Outstanding work from start to finish. Highly recommended." {
		t.Errorf("script block not stripped from testimonial: %q", stored.Testimonial)
	}
}

func TestTestimonialService_Submit_Honeypot(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := NewTestimonialService(repo, &stubAudit{}, discardLogger)

	in := validTestimonial()
	in.Website = "http://bot.example.com"

	_, err := svc.Submit(context.Background(), in)
	if !errors.Is(err, domain.ErrSpamDetected) {
		t.Fatalf("expected ErrSpamDetected, got %v", err)
	}
	if len(repo.testimonials) != 0 {
		t.Errorf("spam must perform zero writes, got %d", len(repo.testimonials))
	}
}

func TestTestimonialService_Submit_RatingBounds(t *testing.T) {
	svc := NewTestimonialService(newStubTestimonialRepo(), &stubAudit{}, discardLogger)

	cases := []struct {
		rating float64
		valid  bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{3.5, false},
		{5, true},
		{6, false},
	}
	for _, tc := range cases {
		repo := newStubTestimonialRepo()
		svc = NewTestimonialService(repo, &stubAudit{}, discardLogger)
		in := validTestimonial()
		in.Rating = tc.rating

		_, err := svc.Submit(context.Background(), in)
		if tc.valid && err != nil {
			t.Errorf("rating %v should be accepted, got %v", tc.rating, err)
		}
		if !tc.valid && !hasField(err, "rating") {
			t.Errorf("rating %v should produce a field error naming rating, got %v", tc.rating, err)
		}
	}
}

func TestTestimonialService_Submit_TestimonialLengthBounds(t *testing.T) {
	svc := NewTestimonialService(newStubTestimonialRepo(), &stubAudit{}, discardLogger)

	in := validTestimonial()
	in.Testimonial = "too short here"

	_, err := svc.Submit(context.Background(), in)
	if !hasField(err, "testimonial") {
		t.Fatalf("expected field error naming testimonial, got %v", err)
	}
}

func TestTestimonialService_Submit_InvalidProjectType(t *testing.T) {
	svc := NewTestimonialService(newStubTestimonialRepo(), &stubAudit{}, discardLogger)

	in := validTestimonial()
	in.ProjectType = "quantum-computing"

	_, err := svc.Submit(context.Background(), in)
	if !hasField(err, "projectType") {
		t.Fatalf("expected field error naming projectType, got %v", err)
	}
}

func TestTestimonialService_Submit_CompanyOptional(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := NewTestimonialService(repo, &stubAudit{}, discardLogger)

	in := validTestimonial()
	in.Company = ""

	if _, err := svc.Submit(context.Background(), in); err != nil {
		t.Fatalf("empty company must be accepted: %v", err)
	}
}

func TestTestimonialService_Submit_DuplicateByName(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := NewTestimonialService(repo, &stubAudit{}, discardLogger)

	first, err := svc.Submit(context.Background(), validTestimonial())
	if err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	// Same name, entirely different content: still a duplicate.
	in := validTestimonial()
	in.Testimonial = "A totally different review with different words in it entirely."
	in.Rating = 3

	_, err = svc.Submit(context.Background(), in)
	var dup *domain.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dup.ExistingID != first.ID {
		t.Errorf("expected existing id %d, got %d", first.ID, dup.ExistingID)
	}
	if dup.Window != 30*24*time.Hour {
		t.Errorf("expected 30-day window, got %v", dup.Window)
	}
}

func TestTestimonialService_Submit_DifferentNameAccepted(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := NewTestimonialService(repo, &stubAudit{}, discardLogger)

	if _, err := svc.Submit(context.Background(), validTestimonial()); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	in := validTestimonial()
	in.ClientName = "Someone Else"
	if _, err := svc.Submit(context.Background(), in); err != nil {
		t.Fatalf("different name must always be accepted: %v", err)
	}
}

func TestTestimonialService_Submit_DuplicateWindowExpired(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := NewTestimonialService(repo, &stubAudit{}, discardLogger)

	if _, err := svc.Submit(context.Background(), validTestimonial()); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	repo.testimonials[0].CreatedAt = time.Now().UTC().Add(-30*24*time.Hour - time.Second)

	if _, err := svc.Submit(context.Background(), validTestimonial()); err != nil {
		t.Fatalf("submission outside the 30-day window must be accepted: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Moderation and listing tests
// ---------------------------------------------------------------------------

func TestTestimonialService_UpdateApproval_FeaturedOnlyWhenPresent(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := NewTestimonialService(repo, &stubAudit{}, discardLogger)

	result, _ := svc.Submit(context.Background(), validTestimonial())

	featured := true
	updated, err := svc.UpdateApproval(context.Background(), result.ID, ports.ApprovalUpdate{
		Approved: true, Featured: &featured, Actor: "admin@x.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Approved || !updated.Featured {
		t.Errorf("expected approved+featured, got %+v", updated)
	}

	// Featured absent from the payload: the flag must be left untouched.
	updated, err = svc.UpdateApproval(context.Background(), result.ID, ports.ApprovalUpdate{
		Approved: false, Actor: "admin@x.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Approved {
		t.Error("expected approved=false")
	}
	if !updated.Featured {
		t.Error("featured must be preserved when absent from the update")
	}
}

func TestTestimonialService_UpdateApproval_NotFound(t *testing.T) {
	svc := NewTestimonialService(newStubTestimonialRepo(), &stubAudit{}, discardLogger)

	_, err := svc.UpdateApproval(context.Background(), 99, ports.ApprovalUpdate{Approved: true})
	if !errors.Is(err, domain.ErrTestimonialNotFound) {
		t.Fatalf("expected ErrTestimonialNotFound, got %v", err)
	}
}

func TestTestimonialService_ListApproved_HidesUnapproved(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := NewTestimonialService(repo, &stubAudit{}, discardLogger)

	a, _ := svc.Submit(context.Background(), validTestimonial())

	in := validTestimonial()
	in.ClientName = "Pending Person"
	b, _ := svc.Submit(context.Background(), in)

	// Approve a; feature b without approving it.
	_, _ = svc.UpdateApproval(context.Background(), a.ID, ports.ApprovalUpdate{Approved: true})
	featured := true
	_, _ = svc.UpdateApproval(context.Background(), b.ID, ports.ApprovalUpdate{Approved: false, Featured: &featured})

	items, err := svc.ListApproved(context.Background(), false, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, item := range items {
		if item.ID == b.ID {
			t.Error("featured-but-unapproved testimonial leaked into the public listing")
		}
	}
	if len(items) != 1 || items[0].ID != a.ID {
		t.Errorf("expected only the approved testimonial, got %d items", len(items))
	}
}

func TestTestimonialService_ListApproved_FeaturedFirst(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := NewTestimonialService(repo, &stubAudit{}, discardLogger)

	older := validTestimonial()
	older.ClientName = "Older Featured"
	a, _ := svc.Submit(context.Background(), older)
	repo.testimonials[0].CreatedAt = time.Now().UTC().Add(-time.Hour)

	newer := validTestimonial()
	newer.ClientName = "Newer Plain"
	b, _ := svc.Submit(context.Background(), newer)

	featured := true
	_, _ = svc.UpdateApproval(context.Background(), a.ID, ports.ApprovalUpdate{Approved: true, Featured: &featured})
	_, _ = svc.UpdateApproval(context.Background(), b.ID, ports.ApprovalUpdate{Approved: true})

	items, _ := svc.ListApproved(context.Background(), false, 10)
	if len(items) != 2 || items[0].ID != a.ID {
		t.Errorf("expected the featured testimonial first, got %+v", items)
	}
}

func TestTestimonialService_Delete(t *testing.T) {
	repo := newStubTestimonialRepo()
	audit := &stubAudit{}
	svc := NewTestimonialService(repo, audit, discardLogger)

	result, _ := svc.Submit(context.Background(), validTestimonial())
	if err := svc.Delete(context.Background(), result.ID, "admin@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.testimonials) != 0 {
		t.Error("expected testimonial to be removed")
	}
	if audit.lastAction() != domain.AuditRecordDeleted {
		t.Errorf("expected delete audit event, got %q", audit.lastAction())
	}

	if err := svc.Delete(context.Background(), result.ID, "admin@x.com"); !errors.Is(err, domain.ErrTestimonialNotFound) {
		t.Fatalf("expected ErrTestimonialNotFound, got %v", err)
	}
}

func TestTestimonialService_Summary(t *testing.T) {
	repo := newStubTestimonialRepo()
	svc := NewTestimonialService(repo, &stubAudit{}, discardLogger)

	a, _ := svc.Submit(context.Background(), validTestimonial())

	in := validTestimonial()
	in.ClientName = "Second Client"
	in.Rating = 3
	b, _ := svc.Submit(context.Background(), in)

	_, _ = svc.UpdateApproval(context.Background(), a.ID, ports.ApprovalUpdate{Approved: true})
	_, _ = svc.UpdateApproval(context.Background(), b.ID, ports.ApprovalUpdate{Approved: true})

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 2 || summary.Approved != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.AverageRating != 4 {
		t.Errorf("expected average rating 4, got %v", summary.AverageRating)
	}
}
