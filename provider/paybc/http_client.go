package paybc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

const maxErrorBody = 4 << 10

type authHeaderType string

const (
	basicAuth  authHeaderType = "Basic"
	bearerAuth authHeaderType = "Bearer"
)

// HTTPError non-2xx answer of the payment system.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

type client struct {
	httpClient *http.Client
	m          *metrics
}

func newClient(timeout time.Duration, m *metrics) *client {
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		m:          m,
	}
}

func (c *client) POSTFormAndUnmarshalJson(ctx context.Context, step, link, token string, form url.Values, out interface{}) error {
	return c.do(ctx, step, http.MethodPost, link, basicAuth, token, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), out)
}

func (c *client) GETAndUnmarshalJson(ctx context.Context, step, link, token string, out interface{}) error {
	return c.do(ctx, step, http.MethodGet, link, bearerAuth, token, "application/json", nil, out)
}

func (c *client) POSTAndUnmarshalJson(ctx context.Context, step, link, token string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "Failed marshal")
	}
	return c.do(ctx, step, http.MethodPost, link, bearerAuth, token, "application/json", bytes.NewReader(b), out)
}

func (c *client) do(
	ctx context.Context,
	step string,
	method string,
	link string,
	authType authHeaderType,
	token string,
	contentType string,
	body io.Reader,
	out interface{},
) (err error) {
	ctx, span := trace.StartSpan(ctx, "paybc."+step)
	span.AddAttributes(
		trace.StringAttribute("http.method", method),
		trace.StringAttribute("http.url", link),
	)
	start := time.Now()
	status := 0
	defer func() {
		c.m.observe(step, status, time.Since(start))
		if err != nil {
			span.SetStatus(trace.Status{Code: trace.StatusCodeUnknown, Message: err.Error()})
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, method, link, body)
	if err != nil {
		return errors.Wrap(err, "Failed new request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", string(authType)+" "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "Failed do request")
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	span.AddAttributes(trace.StringAttribute("http.status_code", strconv.Itoa(status)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			Method:     method,
			URL:        link,
			StatusCode: resp.StatusCode,
			Body:       string(b),
		}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "Failed read all body")
	}
	if err = json.Unmarshal(b, out); err != nil {
		return errors.Wrap(err, "Failed unmarshal")
	}
	return nil
}

func basicCredentials(clientID, clientSecret string) string {
	return base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
}
