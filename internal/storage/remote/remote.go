// Package remote implements storage.Storage on top of the students REST
// API.
//
// Endpoints, relative to the collection base URL
// (default http://localhost:8082/api/students/):
//
//	POST   {base}       create
//	GET    {base}       list
//	GET    {base}{key}  fetch one
//	PUT    {base}{id}   update
//	DELETE {base}{id}   delete one
//	DELETE {base}       delete all
//
// Every method issues exactly one request. There is no retry and no
// caching; any non-2xx status is returned as a *StatusError.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aanand-mishra/students-ui/internal/types"
	"github.com/aanand-mishra/students-ui/internal/utils/response"
)

const tracerName = "github.com/aanand-mishra/students-ui/internal/storage/remote"

// ErrEmptyKey is returned, without any request being made, when a
// single-resource method is called with an empty key. Sending it would
// hit the collection endpoint instead.
var ErrEmptyKey = errors.New("key is empty")

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	// Message is the "error" field of the API's error envelope, if any.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

// Remote is the REST-backed implementation of storage.Storage.
// It is safe for concurrent use.
type Remote struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer

	// timeout, when set, overrides the client's own Timeout.
	timeout *time.Duration
}

// Option configures a Remote.
type Option func(*Remote)

// WithHTTPClient replaces the underlying HTTP client. The client is
// copied, never modified.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Remote) {
		if c != nil {
			r.httpClient = c
		}
	}
}

// WithTimeout bounds every call. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Remote) {
		r.timeout = &timeout
	}
}

// WithTracerProvider sets where spans go. The global provider is used
// otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Remote) {
		r.tracer = tp.Tracer(tracerName)
	}
}

// New returns a Remote talking to the collection endpoint baseURL.
// A missing trailing slash is added.
func New(baseURL string, opts ...Option) (*Remote, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("remote.New: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote.New: base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("remote.New: base url %q: missing host", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	r := &Remote{
		baseURL:    u.String(),
		httpClient: &http.Client{},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}

	client := *r.httpClient
	if r.timeout != nil {
		client.Timeout = *r.timeout
	}
	r.httpClient = &client

	return r, nil
}

// BaseURL returns the normalized collection endpoint.
func (r *Remote) BaseURL() string {
	return r.baseURL
}

func (r *Remote) CreateStudent(ctx context.Context, in types.StudentInput) error {
	if err := r.call(ctx, "CreateStudent", http.MethodPost, r.baseURL, in, nil); err != nil {
		return fmt.Errorf("remote.CreateStudent: %w", err)
	}
	return nil
}

func (r *Remote) GetStudent(ctx context.Context, key string) (types.Student, error) {
	u, err := r.resourceURL(key)
	if err != nil {
		return types.Student{}, fmt.Errorf("remote.GetStudent: %w", err)
	}

	var student types.Student
	if err := r.call(ctx, "GetStudent", http.MethodGet, u, nil, &student); err != nil {
		return types.Student{}, fmt.Errorf("remote.GetStudent: %w", err)
	}
	return student, nil
}

func (r *Remote) GetStudents(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	if err := r.call(ctx, "GetStudents", http.MethodGet, r.baseURL, nil, &students); err != nil {
		return nil, fmt.Errorf("remote.GetStudents: %w", err)
	}
	// A JSON null decodes to a nil slice; callers get [] either way.
	if students == nil {
		students = []types.Student{}
	}
	return students, nil
}

func (r *Remote) UpdateStudent(ctx context.Context, id string, patch types.StudentPatch) error {
	u, err := r.resourceURL(id)
	if err != nil {
		return fmt.Errorf("remote.UpdateStudent: %w", err)
	}

	if err := r.call(ctx, "UpdateStudent", http.MethodPut, u, patch, nil); err != nil {
		return fmt.Errorf("remote.UpdateStudent: %w", err)
	}
	return nil
}

func (r *Remote) DeleteStudent(ctx context.Context, id string) error {
	u, err := r.resourceURL(id)
	if err != nil {
		return fmt.Errorf("remote.DeleteStudent: %w", err)
	}

	if err := r.call(ctx, "DeleteStudent", http.MethodDelete, u, nil, nil); err != nil {
		return fmt.Errorf("remote.DeleteStudent: %w", err)
	}
	return nil
}

func (r *Remote) DeleteStudents(ctx context.Context) error {
	if err := r.call(ctx, "DeleteStudents", http.MethodDelete, r.baseURL, nil, nil); err != nil {
		return fmt.Errorf("remote.DeleteStudents: %w", err)
	}
	return nil
}

func (r *Remote) resourceURL(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}
	return r.baseURL + url.PathEscape(key), nil
}

// call performs one request. in, when non-nil, is sent as the JSON body;
// out, when non-nil, receives the decoded JSON response.
func (r *Remote) call(ctx context.Context, op, method, u string, in, out any) (err error) {
	ctx, span := r.tracer.Start(ctx, "students."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", u),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &StatusError{
			Method:     method,
			URL:        u,
			StatusCode: resp.StatusCode,
			Message:    response.DecodeError(raw),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
