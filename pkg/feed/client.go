package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-pkgz/repeater/v2"

	"github.com/rcreative/giftmon/pkg/domain"
)

// errPermanent marks failures retrying cannot fix, it cuts the backoff short
var errPermanent = errors.New("permanent feed error")

// DefaultEndpoint is the YouTube Data API v3 super chat events resource
const DefaultEndpoint = "https://www.googleapis.com/youtube/v3/superChatEvents"

// Config holds feed client settings
type Config struct {
	Endpoint      string        // API endpoint, DefaultEndpoint if empty
	Token         string        // OAuth access token, auth flow is outside this package
	PageSize      int           // maxResults per page, API caps at 50
	Timeout       time.Duration // per-request timeout
	RetryAttempts int           // page request attempts before giving up
	RetryDelay    time.Duration // initial backoff delay
	RetryMaxDelay time.Duration // backoff cap
}

// Client pulls pages of super chat events from the remote API. Authentication
// is assumed to be completed before first use, the client only attaches the
// supplied bearer token.
type Client struct {
	endpoint   string
	token      string
	pageSize   int
	attempts   int
	delay      time.Duration
	maxDelay   time.Duration
	httpClient *http.Client
}

// NewClient creates a feed client with defaults applied
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = 50
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if cfg.RetryMaxDelay == 0 {
		cfg.RetryMaxDelay = 5 * time.Second
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		token:      cfg.Token,
		pageSize:   cfg.PageSize,
		attempts:   cfg.RetryAttempts,
		delay:      cfg.RetryDelay,
		maxDelay:   cfg.RetryMaxDelay,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// apiResponse mirrors the wire format of superChatEvents.list
type apiResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ID      string `json:"id"`
		Snippet struct {
			ChannelID        string `json:"channelId"`
			SupporterDetails struct {
				DisplayName string `json:"displayName"`
			} `json:"supporterDetails"`
			CommentText   string    `json:"commentText"`
			AmountMicros  string    `json:"amountMicros"`
			Currency      string    `json:"currency"`
			DisplayString string    `json:"displayString"`
			CreatedAt     time.Time `json:"createdAt"`
		} `json:"snippet"`
	} `json:"items"`
}

// ListPage fetches one page of events in API order. An empty pageToken
// requests the first page; the returned next token is empty when the feed has
// no further pages. Transient failures (network errors, 5xx, 429) are retried
// with backoff; other 4xx responses fail immediately since quota or auth
// problems never go away on retry. After the error surfaces the caller's
// cycle aborts and the next tick retries from the last recorded state.
func (c *Client) ListPage(ctx context.Context, pageToken string) ([]domain.GiftEvent, string, error) {
	var events []domain.GiftEvent
	var next string

	retrier := repeater.NewBackoff(c.attempts, c.delay, repeater.WithMaxDelay(c.maxDelay))
	err := retrier.Do(ctx, func() error {
		var err error
		events, next, err = c.listPage(ctx, pageToken)
		return err
	}, errPermanent)
	if err != nil {
		return nil, "", fmt.Errorf("list super chat events: %w", err)
	}
	return events, next, nil
}

// retryableStatus reports whether a response status is worth another attempt.
// Server-side failures and rate limiting clear up on their own, the remaining
// client errors (bad token, quota, bad request) do not.
func retryableStatus(code int) bool {
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
}

func (c *Client) listPage(ctx context.Context, pageToken string) ([]domain.GiftEvent, string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, "", fmt.Errorf("parse endpoint: %w", err)
	}

	q := u.Query()
	q.Set("part", "snippet")
	q.Set("maxResults", strconv.Itoa(c.pageSize))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only response body

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if retryableStatus(resp.StatusCode) {
			return nil, "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		}
		return nil, "", fmt.Errorf("unexpected status %d: %s: %w", resp.StatusCode, string(body), errPermanent)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, "", fmt.Errorf("decode response: %w", err)
	}

	events := make([]domain.GiftEvent, 0, len(apiResp.Items))
	for _, item := range apiResp.Items {
		ev := domain.GiftEvent{
			ID:            item.ID,
			ChannelID:     item.Snippet.ChannelID,
			Supporter:     item.Snippet.SupporterDetails.DisplayName,
			Message:       item.Snippet.CommentText,
			Currency:      item.Snippet.Currency,
			DisplayAmount: item.Snippet.DisplayString,
			CreatedAt:     item.Snippet.CreatedAt,
		}

		// the API reports the amount as a decimal string in micros
		if item.Snippet.AmountMicros != "" {
			amount, err := strconv.ParseInt(item.Snippet.AmountMicros, 10, 64)
			if err != nil {
				return nil, "", fmt.Errorf("parse amount for event %s: %w", item.ID, err)
			}
			ev.AmountMicros = amount
		}

		events = append(events, ev)
	}

	return events, apiResp.NextPageToken, nil
}
