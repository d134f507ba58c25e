package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dom/league-matchmaker/internal/domain"
)

// APIClient handles HTTP communication with the matchmaking server
type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAPIClient creates a new API client. An empty token sends no Authorization header.
func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/matchmaking",
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type CreateMatchRequest struct {
	TestName string           `json:"test_name"`
	Epoch    string           `json:"epoch"`
	Users    []*domain.Player `json:"users"`
}

type ReportMatchResponse struct {
	Epoch    *string `json:"epoch"`
	TestName string  `json:"test_name"`
}

// GetWaitingUsers fetches the players waiting in a test at an epoch
func (c *APIClient) GetWaitingUsers(ctx context.Context, testName, epoch string) ([]*domain.Player, error) {
	resp, err := c.get(ctx, "/users?"+testQuery(testName, epoch))
	if err != nil {
		return nil, fmt.Errorf("get users request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get users failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result domain.WaitingUsers
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.User, nil
}

// CreateMatch asks the server to build a match from users
func (c *APIClient) CreateMatch(ctx context.Context, testName, epoch string, users []*domain.Player) (*domain.MatchResult, error) {
	body := CreateMatchRequest{
		TestName: testName,
		Epoch:    epoch,
		Users:    users,
	}

	resp, err := c.post(ctx, "/create_match", body)
	if err != nil {
		return nil, fmt.Errorf("create match request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create match failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var match domain.MatchResult
	if err := json.NewDecoder(resp.Body).Decode(&match); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &match, nil
}

// ReportMatch posts a played match and returns the next epoch, nil when the test is over
func (c *APIClient) ReportMatch(ctx context.Context, testName, epoch string, match *domain.MatchResult) (*string, error) {
	resp, err := c.post(ctx, "/match?"+testQuery(testName, epoch), match)
	if err != nil {
		return nil, fmt.Errorf("report match request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("report match failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result ReportMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Epoch, nil
}

func testQuery(testName, epoch string) string {
	return url.Values{"test_name": {testName}, "epoch": {epoch}}.Encode()
}

func (c *APIClient) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpClient.Do(req)
}

func (c *APIClient) post(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
