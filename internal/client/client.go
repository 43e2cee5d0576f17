// Package client is a typed HTTP client for the habitchain API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitchain/internal/constants"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/streak"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: %s", http.StatusText(e.Status))
	}
	return e.Message
}

// Client talks to a habitchain API rooted at BaseURL (including the base
// path, e.g. http://localhost:4000/api).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set
	HTTPClient *http.Client
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
	}
}

type loginRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type habitRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	UserID   int    `json:"userId"`
}

type memberRequest struct {
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	UserID   int    `json:"userId"`
}

// Login resolves email to a user, creating it on first use.
func (c *Client) Login(ctx context.Context, email, name string) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodPost, "/login", loginRequest{Name: name, Email: email}, &u)
	return u, err
}

func (c *Client) ListHabits(ctx context.Context, userID int) ([]models.Habit, error) {
	habits := []models.Habit{}
	err := c.do(ctx, http.MethodGet, "/habits?"+userQuery(userID), nil, &habits)
	return habits, err
}

func (c *Client) CreateHabit(ctx context.Context, userID int, name, category string) (models.Habit, error) {
	var h models.Habit
	err := c.do(ctx, http.MethodPost, "/habits", habitRequest{Name: name, Category: category, UserID: userID}, &h)
	return h, err
}

// MarkDone records today's completion of habit id.
func (c *Client) MarkDone(ctx context.Context, id int) (models.Habit, error) {
	var h models.Habit
	err := c.do(ctx, http.MethodPatch, "/habits/"+strconv.Itoa(id)+"/done", nil, &h)
	return h, err
}

func (c *Client) DeleteHabit(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/habits/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) ListMembers(ctx context.Context, userID int) ([]models.Member, error) {
	members := []models.Member{}
	err := c.do(ctx, http.MethodGet, "/members?"+userQuery(userID), nil, &members)
	return members, err
}

func (c *Client) CreateMember(ctx context.Context, userID int, name, relation string) (models.Member, error) {
	var m models.Member
	err := c.do(ctx, http.MethodPost, "/members", memberRequest{Name: name, Relation: relation, UserID: userID}, &m)
	return m, err
}

func (c *Client) DeleteMember(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/members/"+strconv.Itoa(id), nil, nil)
}

// Stats returns the stats bar totals for the user.
func (c *Client) Stats(ctx context.Context, userID int) (streak.Summary, error) {
	var s streak.Summary
	err := c.do(ctx, http.MethodGet, "/stats?"+userQuery(userID), nil, &s)
	return s, err
}

func userQuery(userID int) string {
	return url.Values{"userId": {strconv.Itoa(userID)}}.Encode()
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(constants.RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
			if json.Unmarshal(data, &payload) == nil {
				apiErr.Message = payload.Message
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
