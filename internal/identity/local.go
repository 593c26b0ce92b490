package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type localAccount struct {
	uid          string
	email        string
	passwordHash string
	displayName  string
}

// LocalStore is an in-memory identity backend for development and tests,
// selected with identity.type "local". Credentials are bcrypt-hashed and
// session tokens are HS256 JWTs with an explicit expiry.
type LocalStore struct {
	mu       sync.RWMutex
	byEmail  map[string]*localAccount
	secret   []byte
	tokenTTL time.Duration
}

func NewLocalStore(secret string, tokenTTL time.Duration) *LocalStore {
	return &LocalStore{
		byEmail:  make(map[string]*localAccount),
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *LocalStore) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	key := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return "", ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	account := &localAccount{
		uid:          uuid.NewString(),
		email:        email,
		passwordHash: string(hash),
		displayName:  displayName,
	}
	s.byEmail[key] = account
	return account.uid, nil
}

func (s *LocalStore) SignIn(ctx context.Context, email, password string) (string, error) {
	s.mu.RLock()
	account, ok := s.byEmail[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":  account.uid,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
		"type": "session",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *LocalStore) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "session" {
		return "", ErrInvalidToken
	}
	uid, _ := claims["sub"].(string)
	if uid == "" {
		return "", ErrInvalidToken
	}
	return uid, nil
}

func (s *LocalStore) SignOut(ctx context.Context, token string) error {
	// Tokens are short-lived; a real deployment would blacklist them here.
	if _, err := s.VerifyToken(ctx, token); err != nil {
		return err
	}
	return nil
}
