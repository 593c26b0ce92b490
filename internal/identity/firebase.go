package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"anamola-backend/internal/logger"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// FirebaseStore backs the identity store with Firebase Authentication.
// Account management and token verification go through the Admin SDK;
// password sign-in goes through the Identity Toolkit REST API because the
// Admin SDK has no password grant.
type FirebaseStore struct {
	client *fbauth.Client
	apiKey string
	http   *http.Client
}

func NewFirebaseStore(ctx context.Context, credentialsFile, apiKey string) (*FirebaseStore, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &FirebaseStore{
		client: client,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (s *FirebaseStore) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	logger.ExternalServiceCall("firebase", "CreateUser", "email", email)
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	record, err := s.client.CreateUser(ctx, params)
	logger.ExternalServiceResult("firebase", "CreateUser", err, "email", email)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return "", ErrEmailExists
		}
		return "", err
	}
	return record.UID, nil
}

func (s *FirebaseStore) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", signInEndpoint, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	logger.ExternalServiceCall("firebase", "SignIn", "email", email)
	resp, err := s.http.Do(req)
	if err != nil {
		logger.ExternalServiceResult("firebase", "SignIn", err, "email", email)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		// Identity Toolkit reports bad credentials as 400
		return "", ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("identity toolkit sign-in returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("firebase", "SignIn", err, "email", email)
		return "", err
	}

	var result struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	logger.ExternalServiceResult("firebase", "SignIn", nil, "email", email)
	return result.IDToken, nil
}

func (s *FirebaseStore) VerifyToken(ctx context.Context, token string) (string, error) {
	decoded, err := s.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return decoded.UID, nil
}

func (s *FirebaseStore) SignOut(ctx context.Context, token string) error {
	decoded, err := s.client.VerifyIDToken(ctx, token)
	if err != nil {
		return ErrInvalidToken
	}
	return s.client.RevokeRefreshTokens(ctx, decoded.UID)
}
