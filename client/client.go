// Package client is the Go consumer of the backend API. It mirrors the
// frontend's behavior: typed calls per endpoint, the bounded payment
// verification retry policy, and the registration wizard state machine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/service"
)

// APIError is a non-2xx response decoded from the {"error": msg} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

type RegisterResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	User    *domain.Member `json:"user"`
}

func (c *Client) Register(ctx context.Context, input service.RegisterInput) (*RegisterResponse, error) {
	body := map[string]string{
		"email":             input.Email,
		"password":          input.Password,
		"fullName":          input.FullName,
		"phone":             input.Phone,
		"dateOfBirth":       input.DateOfBirth,
		"address":           input.Address,
		"city":              input.City,
		"province":          input.Province,
		"postalCode":        input.PostalCode,
		"occupation":        input.Occupation,
		"educationLevel":    input.EducationLevel,
		"contactPreference": input.ContactPreference,
	}
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type LoginResponse struct {
	Success bool           `json:"success"`
	User    *domain.Member `json:"user"`
	Session struct {
		AccessToken string `json:"access_token"`
	} `json:"session"`
}

// Login authenticates and stores the session token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Session.AccessToken
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) CurrentUser(ctx context.Context) (*domain.Member, error) {
	var out struct {
		User *domain.Member `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

type CheckoutResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, email, fullName, membershipType string) (*CheckoutResponse, error) {
	var out CheckoutResponse
	err := c.do(ctx, http.MethodPost, "/api/create-checkout-session", map[string]string{
		"email":          email,
		"fullName":       fullName,
		"membershipType": membershipType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type PaymentSuccessResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	User     *domain.Member `json:"user"`
	Password string         `json:"password"`
}

func (c *Client) PaymentSuccess(ctx context.Context, sessionID, email, fullName, membershipType string) (*PaymentSuccessResponse, error) {
	var out PaymentSuccessResponse
	err := c.do(ctx, http.MethodPost, "/api/payment-success", map[string]string{
		"sessionId":      sessionID,
		"email":          email,
		"fullName":       fullName,
		"membershipType": membershipType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var out struct {
		Dashboard *domain.Dashboard `json:"dashboard"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/member/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return out.Dashboard, nil
}

func (c *Client) RegisterForEvent(ctx context.Context, eventID int32) (*domain.EventRegistration, error) {
	var out struct {
		Registration *domain.EventRegistration `json:"registration"`
	}
	path := fmt.Sprintf("/api/member/events/%d/register", eventID)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Registration, nil
}

func (c *Client) ListNews(ctx context.Context) ([]domain.NewsArticle, error) {
	var out struct {
		News []domain.NewsArticle `json:"news"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/news", nil, &out); err != nil {
		return nil, err
	}
	return out.News, nil
}

func (c *Client) GetNews(ctx context.Context, id int32) (*domain.NewsArticle, error) {
	var out struct {
		News *domain.NewsArticle `json:"news"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/news/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return out.News, nil
}

func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var out struct {
		Events []domain.Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *Client) GetEvent(ctx context.Context, id int32) (*domain.Event, error) {
	var out struct {
		Event *domain.Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/events/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Event, nil
}

func (c *Client) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	var out struct {
		Stats *domain.AdminStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}

func (c *Client) AdminListUsers(ctx context.Context) ([]service.AdminUser, error) {
	var out struct {
		Users []service.AdminUser `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) AdminUpdateUserStatus(ctx context.Context, memberID int32, status string) (*domain.Member, error) {
	var out struct {
		User *domain.Member `json:"user"`
	}
	path := fmt.Sprintf("/api/admin/users/%d/status", memberID)
	if err := c.do(ctx, http.MethodPut, path, map[string]string{"status": status}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) AdminCreateNews(ctx context.Context, article *domain.NewsArticle) (*domain.NewsArticle, error) {
	var out struct {
		News *domain.NewsArticle `json:"news"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/news", article, &out); err != nil {
		return nil, err
	}
	return out.News, nil
}

func (c *Client) AdminUpdateNews(ctx context.Context, article *domain.NewsArticle) (*domain.NewsArticle, error) {
	var out struct {
		News *domain.NewsArticle `json:"news"`
	}
	path := fmt.Sprintf("/api/admin/news/%d", article.ID)
	if err := c.do(ctx, http.MethodPut, path, article, &out); err != nil {
		return nil, err
	}
	return out.News, nil
}

func (c *Client) AdminDeleteNews(ctx context.Context, id int32) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/news/%d", id), nil, nil)
}

func (c *Client) AdminCreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	var out struct {
		Event *domain.Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/events", event, &out); err != nil {
		return nil, err
	}
	return out.Event, nil
}

func (c *Client) AdminUpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	var out struct {
		Event *domain.Event `json:"event"`
	}
	path := fmt.Sprintf("/api/admin/events/%d", event.ID)
	if err := c.do(ctx, http.MethodPut, path, event, &out); err != nil {
		return nil, err
	}
	return out.Event, nil
}

func (c *Client) AdminDeleteEvent(ctx context.Context, id int32) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/events/%d", id), nil, nil)
}
