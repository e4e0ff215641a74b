package profile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vanditkanudia/gridgap/core/model"
)

// HTTPSource fetches profiles from an HTTP endpoint serving the same
// hour,value payload as the CSV source. The URL template carries {tech},
// {zone} and {year} placeholders.
type HTTPSource struct {
	urlTemplate string
	token       string
	client      *http.Client
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithBearerToken sets the Authorization header on every request.
func WithBearerToken(token string) HTTPOption {
	return func(s *HTTPSource) { s.token = token }
}

// WithTimeout sets the request timeout on the source's client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) { s.client.Timeout = d }
}

// NewHTTPSource creates a source for the given URL template.
func NewHTTPSource(urlTemplate string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		urlTemplate: urlTemplate,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL resolves the template for a key.
func (s *HTTPSource) URL(key model.ProfileKey) string {
	r := strings.NewReplacer(
		"{tech}", strings.ToLower(string(key.Tech)),
		"{zone}", strings.ToLower(key.Zone),
		"{year}", strconv.Itoa(key.Year),
	)
	return r.Replace(s.urlTemplate)
}

// Fetch retrieves and parses the series for key. A 404 is a
// MissingDataError; any other non-200 status fails the fetch.
func (s *HTTPSource) Fetch(ctx context.Context, key model.ProfileKey) (model.HourlyProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(key), nil)
	if err != nil {
		return model.HourlyProfile{}, fmt.Errorf("failed to create request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return model.HourlyProfile{}, fmt.Errorf("failed to fetch profile %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.HourlyProfile{}, &model.MissingDataError{Kind: "profile", Key: key.String()}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return model.HourlyProfile{}, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	values, err := parseSeries(resp.Body, key)
	if err != nil {
		return model.HourlyProfile{}, err
	}
	return model.HourlyProfile{Key: key, Values: values}, nil
}
