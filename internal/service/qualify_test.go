package service

import (
	"context"
	"testing"
	"time"

	"github.com/timmy/leadscout/internal/domain"
)

type fixedLookup struct {
	created *time.Time
	err     error
}

func (f fixedLookup) CreationDate(context.Context, string) (*time.Time, error) {
	return f.created, f.err
}

var qualifyNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestQualifier(lookup fixedLookup) *Qualifier {
	q := NewQualifier(lookup)
	q.now = func() time.Time { return qualifyNow }
	return q
}

func daysAgoUnix(days int) int64 {
	return qualifyNow.AddDate(0, 0, -days).Unix()
}

func TestEstimateAgeYearsPrecedence(t *testing.T) {
	created := qualifyNow.AddDate(-5, 0, 0)

	tests := []struct {
		name        string
		website     string
		reviewTimes []int64
		lookup      fixedLookup
		wantMethod  AgeMethod
		wantOK      bool
	}{
		{
			name:        "reviews win over resolvable domain",
			website:     "https://www.example.com/about",
			reviewTimes: []int64{daysAgoUnix(400)},
			lookup:      fixedLookup{created: &created},
			wantMethod:  AgeMethodReviews,
			wantOK:      true,
		},
		{
			name:       "domain fallback without reviews",
			website:    "https://example.com",
			lookup:     fixedLookup{created: &created},
			wantMethod: AgeMethodDomain,
			wantOK:     true,
		},
		{
			name:       "lookup failure is unknown",
			website:    "https://example.com",
			lookup:     fixedLookup{err: context.DeadlineExceeded},
			wantMethod: AgeMethodUnknown,
			wantOK:     false,
		},
		{
			name:       "no signals",
			wantMethod: AgeMethodUnknown,
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newTestQualifier(tt.lookup)
			_, method, ok := q.EstimateAgeYears(context.Background(), tt.website, tt.reviewTimes)
			if method != tt.wantMethod {
				t.Errorf("method = %q, want %q", method, tt.wantMethod)
			}
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestEstimateAgeYearsFromEarliestReview(t *testing.T) {
	q := newTestQualifier(fixedLookup{})

	// Earliest review drives the estimate regardless of order.
	times := []int64{daysAgoUnix(30), daysAgoUnix(400), daysAgoUnix(100)}
	years, method, ok := q.EstimateAgeYears(context.Background(), "", times)
	if !ok || method != AgeMethodReviews {
		t.Fatalf("method = %q, ok = %v", method, ok)
	}
	want := 400.0 / 365.25
	if years < want-0.01 || years > want+0.01 {
		t.Errorf("years = %f, want about %f", years, want)
	}
}

func TestEstimateAgeYearsTinyButNonNegative(t *testing.T) {
	q := newTestQualifier(fixedLookup{})

	// A very fresh review still yields a usable estimate; there is no
	// plausibility floor beyond non-negativity.
	years, method, ok := q.EstimateAgeYears(context.Background(), "", []int64{daysAgoUnix(1)})
	if !ok || method != AgeMethodReviews {
		t.Fatalf("method = %q, ok = %v", method, ok)
	}
	if years < 0 {
		t.Errorf("years = %f, want non-negative", years)
	}
}

func intPtr(i int) *int { return &i }

func TestQualifies(t *testing.T) {
	q := newTestQualifier(fixedLookup{})

	oldReview := []int64{daysAgoUnix(400)}

	tests := []struct {
		name      string
		details   domain.PlaceDetails
		threshold int
		want      bool
	}{
		{
			name: "qualifies",
			details: domain.PlaceDetails{
				ReviewsCount: intPtr(25),
				ReviewTimes:  oldReview,
			},
			threshold: 10,
			want:      true,
		},
		{
			name: "website disqualifies",
			details: domain.PlaceDetails{
				Website:      "https://example.com",
				ReviewsCount: intPtr(25),
				ReviewTimes:  oldReview,
			},
			threshold: 10,
			want:      false,
		},
		{
			name: "count equal to threshold does not qualify",
			details: domain.PlaceDetails{
				ReviewsCount: intPtr(10),
				ReviewTimes:  oldReview,
			},
			threshold: 10,
			want:      false,
		},
		{
			name: "too young",
			details: domain.PlaceDetails{
				ReviewsCount: intPtr(25),
				ReviewTimes:  []int64{daysAgoUnix(100)},
			},
			threshold: 10,
			want:      false,
		},
		{
			name: "unknown age",
			details: domain.PlaceDetails{
				ReviewsCount: intPtr(25),
			},
			threshold: 10,
			want:      false,
		},
		{
			name: "nil reviews count",
			details: domain.PlaceDetails{
				ReviewTimes: oldReview,
			},
			threshold: 10,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.Qualifies(context.Background(), &tt.details, tt.threshold)
			if got != tt.want {
				t.Errorf("Qualifies = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQualifiesMonotonicInThreshold(t *testing.T) {
	q := newTestQualifier(fixedLookup{})

	details := domain.PlaceDetails{
		ReviewsCount: intPtr(25),
		ReviewTimes:  []int64{daysAgoUnix(600)},
	}

	if !q.Qualifies(context.Background(), &details, 20) {
		t.Fatal("expected details to qualify at threshold 20")
	}
	// Lowering the threshold can never flip a qualifying result.
	for _, threshold := range []int{15, 10, 5, 0} {
		if !q.Qualifies(context.Background(), &details, threshold) {
			t.Errorf("expected details to qualify at threshold %d", threshold)
		}
	}
}
