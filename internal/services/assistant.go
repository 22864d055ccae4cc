// HTTP implementation of [Assistant] for the music-assistant backend.
//
// Endpoint shapes follow the backend's FastAPI service: /auth/status,
// /auth/spotify, /auth/logout, /chat.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/muse/internal/shared"
)

// DefaultBaseURL is where the backend listens during local development.
const DefaultBaseURL = "http://localhost:8080"

// FallbackReply substitutes for a 2xx chat response whose payload is missing
// the response field. The turn still succeeds; the user just sees this.
const FallbackReply = "Hey! I'm having some trouble with that response. Mind trying again?"

// AssistantService talks to the music-assistant backend over HTTP.
type AssistantService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAssistantService creates a backend client. An empty baseURL falls back
// to [DefaultBaseURL]; a nil client falls back to [http.DefaultClient].
func NewAssistantService(baseURL string, client *http.Client) *AssistantService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &AssistantService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (a *AssistantService) Name() string {
	return "Music Assistant"
}

// LoginURL returns the browser redirect target for the Spotify login flow.
func (a *AssistantService) LoginURL() string {
	return a.baseURL + "/auth/spotify"
}

// doRequest performs an HTTP request against the backend and decodes a JSON
// response into result when provided.
func (a *AssistantService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	apiURL := a.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Status queries GET /auth/status for the current session state.
func (a *AssistantService) Status(ctx context.Context) (*AuthStatus, error) {
	var status AuthStatus
	if err := a.doRequest(ctx, http.MethodGet, "/auth/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Logout posts to /auth/logout. No body is required either way.
func (a *AssistantService) Logout(ctx context.Context) error {
	return a.doRequest(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Send posts one message to /chat and returns the assistant's raw reply.
func (a *AssistantService) Send(ctx context.Context, message string) (string, error) {
	payload := struct {
		Message string `json:"message"`
	}{Message: message}

	var reply struct {
		Response string `json:"response"`
	}

	if err := a.doRequest(ctx, http.MethodPost, "/chat", payload, &reply); err != nil {
		return "", err
	}

	// The backend promised {response: string}; hold it to that loosely.
	if reply.Response == "" {
		return FallbackReply, nil
	}

	return reply.Response, nil
}
