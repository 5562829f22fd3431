// Package contact validates and delivers messages from the contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// ErrValidation marks form errors the sender can fix.
var ErrValidation = errors.New("contact: invalid form")

// ErrUpstream marks a delivery failure at the form endpoint.
var ErrUpstream = errors.New("contact: delivery failed")

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Form is one message.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ValidationError carries a message per offending field, keyed by the field's
// JSON name.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "contact: " + strings.Join(parts, "; ")
}

// Is lets errors.Is match ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validate checks every field and returns a *ValidationError naming all
// problems at once, or nil.
func (f Form) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(f.Name) == "" {
		fields["name"] = "Name is required"
	}
	switch {
	case strings.TrimSpace(f.Email) == "":
		fields["email"] = "Email is required"
	case !emailPattern.MatchString(f.Email):
		fields["email"] = "Email is invalid"
	}
	if strings.TrimSpace(f.Subject) == "" {
		fields["subject"] = "Subject is required"
	}
	if strings.TrimSpace(f.Message) == "" {
		fields["message"] = "Message is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Options configures a Client.
type Options struct {
	// Endpoint receives the form as JSON. Empty simulates delivery.
	Endpoint string
	Timeout  time.Duration
	Retries  int
	Logger   *zap.Logger
}

// Client delivers forms.
type Client struct {
	endpoint string
	http     *resty.Client
	log      *zap.Logger
}

// NewClient builds a Client. Transient failures (connection errors, 429 and
// 5xx) are retried Retries times by retryablehttp underneath resty.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	retry := retryablehttp.NewClient()
	retry.Logger = nil
	retry.RetryMax = max(opts.Retries, 0)
	retry.RetryWaitMin = 100 * time.Millisecond
	retry.RetryWaitMax = 2 * time.Second
	retry.ErrorHandler = retryablehttp.PassthroughErrorHandler

	r := resty.NewWithClient(retry.StandardClient()).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "folio-contact/1.0")

	return &Client{
		endpoint: strings.TrimSpace(opts.Endpoint),
		http:     r,
		log:      opts.Logger,
	}
}

// Simulated reports whether Submit skips delivery.
func (c *Client) Simulated() bool { return c.endpoint == "" }

// Submit validates f and posts it to the endpoint.
func (c *Client) Submit(ctx context.Context, f Form) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if c.Simulated() {
		c.log.Info("contact form accepted without delivery", zap.String("subject", f.Subject))
		return nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(f).
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		c.log.Warn("contact endpoint refused form",
			zap.Int("status", resp.StatusCode()),
			zap.String("endpoint", c.endpoint))
		return fmt.Errorf("%w: endpoint returned %s", ErrUpstream, resp.Status())
	}
	c.log.Info("contact form delivered", zap.Duration("took", resp.Time()))
	return nil
}
