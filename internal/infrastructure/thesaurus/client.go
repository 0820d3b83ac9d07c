package thesaurus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL    = "https://api.datamuse.com"
	defaultMaxResults = 20
	defaultAttempts   = 3
)

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxResults int
	Attempts   uint
	RetryDelay time.Duration
}

// Client queries a Datamuse-compatible "means like" endpoint.
type Client struct {
	baseURL    string
	maxResults int
	attempts   uint
	delay      time.Duration
	client     *http.Client
	logger     *zap.Logger
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("thesaurus request failed: status=%d body=%s", e.StatusCode, e.Body)
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return "decode thesaurus response: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

type word struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// NewClient returns nil when opts.BaseURL is empty.
func NewClient(opts Options, logger *zap.Logger) *Client {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	attempts := opts.Attempts
	if attempts == 0 {
		attempts = defaultAttempts
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxResults: maxResults,
		attempts:   attempts,
		delay:      delay,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// LookupSynonyms returns the lowercase, de-duplicated words the service
// considers to mean the same as term.
func (c *Client) LookupSynonyms(ctx context.Context, term string) ([]string, error) {
	if c == nil {
		return nil, errors.New("nil thesaurus client")
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return []string{}, nil
	}

	q := url.Values{}
	q.Set("ml", term)
	q.Set("max", strconv.Itoa(c.maxResults))
	endpoint := c.baseURL + "/words?" + q.Encode()

	words, err := retry.DoWithData(
		func() ([]word, error) {
			return c.fetch(ctx, endpoint)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxJitter(c.delay/2),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying thesaurus request",
				zap.Uint("attempt", n+1),
				zap.String("term", term),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		v := strings.ToLower(strings.TrimSpace(w.Word))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]word, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(rb))}
	}

	var out []word
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &decodeError{err: err}
	}
	return out, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var decErr *decodeError
	if errors.As(err, &decErr) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	return true
}
