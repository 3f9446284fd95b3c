package service

import (
	"context"
	"strings"
	"time"

	"github.com/timmy/leadscout/internal/domain"
	"github.com/timmy/leadscout/internal/logger"
	"github.com/timmy/leadscout/internal/whois"
)

// AgeMethod names the signal an age estimate was derived from.
type AgeMethod string

const (
	AgeMethodReviews AgeMethod = "reviews"
	AgeMethodDomain  AgeMethod = "domain"
	AgeMethodUnknown AgeMethod = "unknown"
)

const daysPerYear = 365.25

// Qualifier decides whether a business is a qualifying lead from its details
// alone: no website, review count above the threshold, and an estimated age
// of at least one year.
type Qualifier struct {
	lookup whois.DomainLookup
	now    func() time.Time
}

// NewQualifier creates a Qualifier.
// Parameters:
//   - lookup: domain registration lookup used as the age fallback; nil means
//     the capability is unavailable.
// Returns:
//   - *Qualifier: initialized qualifier.
func NewQualifier(lookup whois.DomainLookup) *Qualifier {
	if lookup == nil {
		lookup = whois.Unavailable{}
	}
	return &Qualifier{
		lookup: lookup,
		now:    time.Now,
	}
}

// EstimateAgeYears estimates how long a business has existed. Review history
// takes precedence: when any review timestamps exist the age is computed from
// the earliest one and accepted whenever non-negative. Only without review
// timestamps does the domain registration creation date of the website serve
// as a fallback. When neither signal is available the method is unknown.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - website: business website URL; may be empty.
//   - reviewTimes: review timestamps as unix-epoch seconds.
// Returns:
//   - float64: estimated age in years; meaningful only when ok is true.
//   - AgeMethod: signal the estimate came from.
//   - bool: false when no estimate could be made.
func (q *Qualifier) EstimateAgeYears(ctx context.Context, website string, reviewTimes []int64) (float64, AgeMethod, bool) {
	now := q.now().UTC()

	if len(reviewTimes) > 0 {
		earliest := reviewTimes[0]
		for _, t := range reviewTimes[1:] {
			if t < earliest {
				earliest = t
			}
		}
		years := now.Sub(time.Unix(earliest, 0).UTC()).Hours() / 24 / daysPerYear
		if years >= 0 {
			return years, AgeMethodReviews, true
		}
	}

	if d := whois.ExtractDomain(website); d != "" {
		created, err := q.lookup.CreationDate(ctx, d)
		if err != nil {
			logger.CtxDebug(ctx, "Domain lookup failed for %s: %v", d, err)
		} else if created != nil {
			years := now.Sub(created.UTC()).Hours() / 24 / daysPerYear
			return years, AgeMethodDomain, true
		}
	}

	return 0, AgeMethodUnknown, false
}

// Qualifies applies the lead predicate to fetched details: the website must
// be empty, the review count must strictly exceed reviewsThreshold, and the
// estimated age must be known and at least one year.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - details: fetched place details.
//   - reviewsThreshold: exclusive lower bound on the review count.
// Returns:
//   - bool: true when the business qualifies as a lead.
func (q *Qualifier) Qualifies(ctx context.Context, details *domain.PlaceDetails, reviewsThreshold int) bool {
	if strings.TrimSpace(details.Website) != "" {
		return false
	}

	reviewsCount := 0
	if details.ReviewsCount != nil {
		reviewsCount = *details.ReviewsCount
	}
	if reviewsCount <= reviewsThreshold {
		return false
	}

	years, _, ok := q.EstimateAgeYears(ctx, details.Website, details.ReviewTimes)
	return ok && years >= 1.0
}
