package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/peerclass/peerclass/core"
	"github.com/peerclass/peerclass/core/workspace"
)

var (
	// ErrUnauthorized is returned when the platform rejects the access
	// token; the session must log in again.
	ErrUnauthorized = errors.New("platform rejected the access token")

	jwtParser = &jwt.Parser{} // claims are read unverified; only the platform holds the key
)

// Client talks to the remote learning-platform REST API. It is safe for
// concurrent use; all repositories of one session share it (and its
// access token).
type Client struct {
	baseURL string
	http    *http.Client

	mutex    sync.RWMutex
	token    string
	tokenExp time.Time
}

func NewClient(conf *core.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.Platform.BaseURL, "/"),
		http:    &http.Client{Timeout: conf.Platform.RequestTimeout},
	}
}

// Repositories exposes the client as the full set of session backends.
func (c *Client) Repositories() workspace.Repositories {
	return workspace.Repositories{
		Users:       &userRepository{c},
		Categories:  &categoryRepository{c},
		Courses:     &courseRepository{c},
		Tasks:       &taskRepository{c},
		Enrollments: &enrollmentRepository{c},
		Completions: &completionRepository{c},
	}
}

// SetToken installs the bearer token for subsequent requests and records
// its expiry from the JWT claims.
func (c *Client) SetToken(token string) error {
	claims := new(jwt.StandardClaims)
	if _, _, err := jwtParser.ParseUnverified(token, claims); err != nil {
		return errors.Wrap(err, "parsing access token")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.token = token
	c.tokenExp = time.Unix(claims.ExpiresAt, 0)
	return nil
}

func (c *Client) Token() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.token
}

// TokenExpired reports whether the installed token has run out.
func (c *Client) TokenExpired() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.token == "" || time.Now().After(c.tokenExp)
}

// apiError is the platform's error envelope.
type apiError struct {
	Detail interface{} `json:"detail"`
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "marshalling %s %s payload", method, path)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrapf(err, "building %s %s request", method, path)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// postForm submits an urlencoded form (the platform's OAuth2 login).
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrapf(err, "building POST %s request", path)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := new(apiError)
		data, _ := ioutil.ReadAll(resp.Body)
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Detail == nil {
			return errors.Errorf("%s %s: %s", req.Method, req.URL.Path, resp.Status)
		}
		return errors.Errorf("%s %s: %s: %v", req.Method, req.URL.Path, resp.Status, apiErr.Detail)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", req.Method, req.URL.Path)
	}
	return nil
}

func idPath(prefix string, id int) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
