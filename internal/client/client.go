package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/PerfectTense/pt-client-go/internal/config"
	"github.com/PerfectTense/pt-client-go/internal/engine"
	"github.com/PerfectTense/pt-client-go/internal/engine/transform"
)

// Service endpoints.
const (
	correctPath   = "/correct"
	intStatusPath = "/intStatus"
	usagePath     = "/usage"
	appKeyPath    = "/generateAppKey"
)

// Client talks to the remote proofreading service. It performs no
// correction logic of its own: responses are decoded into the typed
// result model and handed to the engine.
//
// Client implements engine.StatusSink, so a session constructed with
// engine.WithSink(client) persists decisions back to the service.
type Client struct {
	http *resty.Client
	log  *charmlog.Logger
}

// Option configures a Client during creation.
type Option func(*Client)

// WithLogger routes request diagnostics to the given logger.
func WithLogger(l *charmlog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a client from the given configuration. The API key is
// required; the app key is optional and forwarded when present.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.API.Key == "" {
		return nil, ErrMissingAPIKey
	}

	rc := resty.New().
		SetBaseURL(cfg.API.BaseURL).
		SetTimeout(time.Duration(cfg.API.Timeout)).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", cfg.API.Key).
		SetRetryCount(3).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	if cfg.API.AppKey != "" {
		rc.SetHeader("AppAuthorization", cfg.API.AppKey)
	}
	rc.AddRetryCondition(retryCondition)

	c := &Client{
		http: rc,
		log:  charmlog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// retryCondition retries network errors, server errors, and rate
// limiting. Client errors other than 429 are final.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
}

// SubmitOptions tune a correction request.
type SubmitOptions struct {
	// ProtectedTerms are never flagged or altered by the service.
	ProtectedTerms []string
}

type submitRequest struct {
	Text           string   `json:"text"`
	ResponseType   []string `json:"responseType"`
	ProtectedTerms []string `json:"protectedTerms,omitempty"`
}

// Submit sends raw text for correction and returns the decoded result.
// The result has not been initialized; hand it to engine.NewSession.
func (c *Client) Submit(ctx context.Context, text string, opts SubmitOptions) (*transform.Document, error) {
	body := submitRequest{
		Text:           text,
		ResponseType:   []string{"rulesApplied", "grammarScore"},
		ProtectedTerms: opts.ProtectedTerms,
	}
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(correctPath)
	if err != nil {
		return nil, fmt.Errorf("submitting text: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}

	doc, err := transform.Decode(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decoding correction result: %w", err)
	}
	c.log.Debug("submitted text", "job", doc.ID, "sentences", len(doc.Sentences))
	return doc, nil
}

// PersistStatus records one interactive decision with the service. It
// satisfies engine.StatusSink.
func (c *Client) PersistStatus(ctx context.Context, u engine.StatusUpdate) error {
	body := []byte(`{}`)
	body, _ = sjson.SetBytes(body, "id", u.JobID)
	body, _ = sjson.SetBytes(body, "sentenceIndex", u.SentenceIndex)
	body, _ = sjson.SetBytes(body, "indexInSentence", u.IndexInSentence)
	body, _ = sjson.SetBytes(body, "sentence", u.SentenceText)
	body, _ = sjson.SetBytes(body, "offset", u.Offset)
	body, _ = sjson.SetBytes(body, "status", string(u.Status))

	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(intStatusPath)
	if err != nil {
		return fmt.Errorf("persisting status: %w", err)
	}
	if err := apiError(resp); err != nil {
		return err
	}
	c.log.Debug("persisted status",
		"job", u.JobID, "sentence", u.SentenceIndex, "transform", u.IndexInSentence, "status", u.Status)
	return nil
}

// Usage reports the API key's call allotment.
type Usage struct {
	APICallsUsed      int  `json:"apiCallsUsed"`
	APICallsRemaining int  `json:"apiCallsRemaining"`
	Unlimited         bool `json:"unlimited"`
}

// Usage fetches usage statistics for the configured API key.
func (c *Client) Usage(ctx context.Context) (*Usage, error) {
	resp, err := c.http.R().SetContext(ctx).SetResult(&Usage{}).Get(usagePath)
	if err != nil {
		return nil, fmt.Errorf("fetching usage: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	return resp.Result().(*Usage), nil
}

// ValidateKey reports whether the configured API key is accepted by the
// service. A rejected key is not an error; transport failures are.
func (c *Client) ValidateKey(ctx context.Context) (bool, error) {
	resp, err := c.http.R().SetContext(ctx).Get(usagePath)
	if err != nil {
		return false, fmt.Errorf("validating key: %w", err)
	}
	code := resp.StatusCode()
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return false, nil
	}
	if err := apiError(resp); err != nil {
		return false, err
	}
	return true, nil
}

// AppRegistration describes an application requesting its own app key.
type AppRegistration struct {
	Name        string `json:"name"`
	Email       string `json:"emailAddress"`
	Description string `json:"description,omitempty"`
	SiteURL     string `json:"siteUrl,omitempty"`
}

// RegisterApp registers an application with the service and returns the
// issued app key.
func (c *Client) RegisterApp(ctx context.Context, reg AppRegistration) (string, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(reg).Post(appKeyPath)
	if err != nil {
		return "", fmt.Errorf("registering app: %w", err)
	}
	if err := apiError(resp); err != nil {
		return "", err
	}
	key := gjson.GetBytes(resp.Body(), "key").String()
	if key == "" {
		return "", ErrNoAppKey
	}
	return key, nil
}
