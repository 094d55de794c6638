package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lrocha/leetboard/internal/logger"
)

const (
	// DefaultBaseURL is the production GraphQL host.
	DefaultBaseURL = "https://leetcode.com"

	// DefaultTimeout bounds a single profile request.
	DefaultTimeout = 15 * time.Second

	defaultUserAgent = "Mozilla/5.0 (compatible; leetboard/1.0)"
)

// profileQuery requests the public profile fields the table needs: display
// name, avatar, rank, accepted-submission counts per difficulty, and badges.
const profileQuery = `query getUserProfile($username: String!) {
  matchedUser(username: $username) {
    username
    profile {
      realName
      userAvatar
      ranking
    }
    submitStats {
      acSubmissionNum {
        difficulty
        count
      }
    }
    badges {
      displayName
    }
  }
}`

// Client talks to the platform's GraphQL endpoint.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a Client against the production endpoint.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logger.Default().WithPrefix("leetcode"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   *profileData    `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type profileData struct {
	MatchedUser *matchedUser `json:"matchedUser"`
}

type matchedUser struct {
	Username    string      `json:"username"`
	Profile     userProfile `json:"profile"`
	SubmitStats submitStats `json:"submitStats"`
	Badges      []Badge     `json:"badges"`
}

type userProfile struct {
	RealName   string `json:"realName"`
	UserAvatar string `json:"userAvatar"`
	Ranking    *int   `json:"ranking"`
}

type submitStats struct {
	ACSubmissionNum []SubmissionCount `json:"acSubmissionNum"`
}

// SubmissionCount is one accepted-submission bucket. The platform reports a
// per-difficulty breakdown plus an aggregated "All" bucket.
type SubmissionCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// Badge is an earned profile badge.
type Badge struct {
	DisplayName string `json:"displayName"`
}

// Profile is the raw per-user payload returned by FetchProfile.
type Profile struct {
	Username         string
	RealName         string
	AvatarURL        string
	Ranking          *int
	SubmissionCounts []SubmissionCount
	Badges           []Badge
}

// FetchProfile issues one GraphQL lookup for username. Failures are reported
// through typed errors: *APIError for non-200 statuses, *UpstreamError for
// query-level errors, ErrUserNotFound for unknown users, and *ParseError for
// undecodable bodies.
func (c *Client) FetchProfile(ctx context.Context, username string) (*Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("leetcode").WithField("username", username)

	payload, err := json.Marshal(graphQLRequest{
		OperationName: "getUserProfile",
		Query:         profileQuery,
		Variables:     map[string]any{"username": username},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	url := c.baseURL + "/graphql"
	log.Debug("fetching profile from: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", fmt.Sprintf("https://leetcode.com/%s/", username))
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch profile: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("profile response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("profile request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode profile response: %v", err)
		return nil, &ParseError{Err: err}
	}

	if len(out.Errors) > 0 && !bytes.Equal(out.Errors, []byte("null")) {
		log.Warn("query returned errors: %s", string(out.Errors))
		return nil, &UpstreamError{Payload: out.Errors}
	}

	if out.Data == nil || out.Data.MatchedUser == nil {
		log.Info("no profile matched username %s", username)
		return nil, ErrUserNotFound
	}

	mu := out.Data.MatchedUser
	log.Info("fetched profile for user %s", username)
	return &Profile{
		Username:         mu.Username,
		RealName:         mu.Profile.RealName,
		AvatarURL:        mu.Profile.UserAvatar,
		Ranking:          mu.Profile.Ranking,
		SubmissionCounts: mu.SubmitStats.ACSubmissionNum,
		Badges:           mu.Badges,
	}, nil
}
