package entrez

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/altinukshini/taxseq/internal/config"
	"github.com/altinukshini/taxseq/internal/model"
)

// NCBI allows 3 requests per second per client, 10 with an API key.
const (
	anonymousRPS = 3
	keyedRPS     = 10
)

// Options identify the caller to NCBI and tune paging. They replace the
// package-level settings other E-utilities clients mutate.
type Options struct {
	Email     string
	APIKey    string
	Tool      string
	BaseURL   string
	RetType   string
	BatchSize int

	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Logger     *zap.Logger
}

// OptionsFromConfig maps the run configuration onto client options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Email:     cfg.Email,
		APIKey:    cfg.APIKey,
		Tool:      cfg.Tool,
		BaseURL:   cfg.BaseURL,
		RetType:   cfg.RetType,
		BatchSize: cfg.BatchSize,
	}
}

type Client struct {
	http    *http.Client
	base    *url.URL
	opts    Options
	limiter *rate.Limiter
	logger  *zap.Logger

	session *model.SearchContext
}

type RateLimit struct {
	Remaining int
	Limit     int
}

// StatusError is returned for any non-2xx E-utilities response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = config.DefaultBaseURL
	}
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", opts.BaseURL, err)
	}
	if opts.Tool == "" {
		opts.Tool = config.DefaultTool
	}
	if opts.RetType == "" {
		opts.RetType = config.DefaultRetType
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = config.DefaultBatchSize
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	limiter := opts.Limiter
	if limiter == nil {
		rps := anonymousRPS
		if opts.APIKey != "" {
			rps = keyedRPS
		}
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:    httpClient,
		base:    base,
		opts:    opts,
		limiter: limiter,
		logger:  logger.Named("entrez"),
	}, nil
}

// identity returns the tool/email/api_key parameters sent on every request.
func (c *Client) identity() url.Values {
	v := url.Values{}
	v.Set("tool", c.opts.Tool)
	if c.opts.Email != "" {
		v.Set("email", c.opts.Email)
	}
	if c.opts.APIKey != "" {
		v.Set("api_key", c.opts.APIKey)
	}
	return v
}

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	v := c.identity()
	for k, vals := range query {
		for _, val := range vals {
			v.Add(k, val)
		}
	}
	u := c.base.ResolveReference(&url.URL{Path: endpoint})
	u.RawQuery = v.Encode()
	return u.String()
}

// Get issues one paced GET against an E-utilities endpoint and returns the
// body. The caller closes it.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL(endpoint, query), nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}

	rl := ParseRateLimit(resp)
	c.logger.Debug("request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("rate_remaining", rl.Remaining),
		zap.Int("rate_limit", rl.Limit))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}
	return resp.Body, nil
}

// Session returns the history context stored by the last successful Search.
func (c *Client) Session() (model.SearchContext, bool) {
	if c.session == nil {
		return model.SearchContext{}, false
	}
	return *c.session, true
}

func ParseRateLimit(resp *http.Response) RateLimit {
	rl := RateLimit{}
	if resp == nil {
		return rl
	}
	rl.Remaining, _ = strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	rl.Limit, _ = strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	return rl
}
