package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// TokenCache stores survey access tokens. The key is derived from the
// (survey, student) pair, which is what keeps at most one active token
// per pair: issuing again overwrites, and the TTL expires stale ones.
type TokenCache interface {
	Save(ctx context.Context, token *model.AccessToken) error
	Get(ctx context.Context, surveyID, studentID string) (*model.AccessToken, error)
	MarkUsed(ctx context.Context, token *model.AccessToken) error
}

type tokenCache struct {
	client *redis.Client
}

// NewTokenCache creates a new token cache
func NewTokenCache(client *redis.Client) TokenCache {
	return &tokenCache{
		client: client,
	}
}

func tokenKey(surveyID, studentID string) string {
	return "token:" + surveyID + ":" + studentID
}

func (c *tokenCache) Save(ctx context.Context, token *model.AccessToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return errors.New("token already expired")
	}
	return c.client.Set(ctx, tokenKey(token.SurveyID, token.StudentID), data, ttl).Err()
}

func (c *tokenCache) Get(ctx context.Context, surveyID, studentID string) (*model.AccessToken, error) {
	data, err := c.client.Get(ctx, tokenKey(surveyID, studentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var token model.AccessToken
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *tokenCache) MarkUsed(ctx context.Context, token *model.AccessToken) error {
	token.Used = true
	return c.Save(ctx, token)
}
