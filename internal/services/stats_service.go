package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lrocha/leetboard/internal/leetcode"
	"github.com/lrocha/leetboard/internal/logger"
	"github.com/lrocha/leetboard/internal/models"
	"github.com/lrocha/leetboard/internal/worker"
)

// StatsService fetches and normalizes profile stats for batches of usernames.
type StatsService interface {
	FetchOne(ctx context.Context, username string) models.ProfileRecord
	FetchAll(ctx context.Context, usernames []string) []models.ProfileRecord
}

type statsService struct {
	client      leetcode.ClientInterface
	concurrency int
}

// NewStatsService creates a new StatsService. concurrency bounds how many
// lookups FetchAll runs at once; 1 or less means strictly sequential.
func NewStatsService(client leetcode.ClientInterface, concurrency int) StatsService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &statsService{client: client, concurrency: concurrency}
}

// FetchOne looks up one username and always yields a record: a lookup that
// fails in any way comes back as a failure record, never as an error, so a
// bad username can never sink the rest of a batch.
func (s *statsService) FetchOne(ctx context.Context, username string) models.ProfileRecord {
	log := logger.FromContext(ctx)
	log.Debug("fetching stats: username=%s", username)

	profile, err := s.client.FetchProfile(ctx, username)
	if err != nil {
		detail := failureDetail(err)
		log.Warn("fetch failed for %s: %s", username, detail)
		return models.FailureRecord(username, detail)
	}

	return models.SuccessRecord(
		username,
		profile.RealName,
		profile.AvatarURL,
		profile.Ranking,
		leetcode.ProblemsSolved(profile.SubmissionCounts),
		leetcode.BadgeNames(profile.Badges),
	)
}

// FetchAll fetches every username and returns one record per input, in input
// order, regardless of individual failures.
func (s *statsService) FetchAll(ctx context.Context, usernames []string) []models.ProfileRecord {
	log := logger.FromContext(ctx)
	log.Info("fetching stats for %d users (concurrency=%d)", len(usernames), s.concurrency)
	start := time.Now()

	records := make([]models.ProfileRecord, len(usernames))
	if s.concurrency <= 1 || len(usernames) <= 1 {
		for i, username := range usernames {
			records[i] = s.FetchOne(ctx, username)
		}
	} else {
		pool := worker.NewPool(s.concurrency)
		pool.Map(ctx, len(usernames), func(ctx context.Context, i int) {
			records[i] = s.FetchOne(ctx, usernames[i])
		})
	}

	log.Info("fetched %d records in %v", len(records), time.Since(start))
	return records
}

// failureDetail maps a lookup error onto the detail string shown in the
// table. Status errors win over payload errors, which win over the unknown
// user case; anything unrecognized, transport failures included, is reported
// as a generic API error.
func failureDetail(err error) string {
	var apiErr *leetcode.APIError
	var upstreamErr *leetcode.UpstreamError
	var parseErr *leetcode.ParseError

	switch {
	case errors.As(err, &apiErr):
		return fmt.Sprintf("API error: %d", apiErr.StatusCode)
	case errors.As(err, &upstreamErr):
		return upstreamErr.Detail()
	case errors.Is(err, leetcode.ErrUserNotFound):
		return "User not found."
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Invalid API response: %v", parseErr.Unwrap())
	default:
		return fmt.Sprintf("API error: %v", err)
	}
}
