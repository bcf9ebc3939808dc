package utils

import (
	"context"
	"fmt"
	"gonotes/models"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTTL is the sliding session window; every authenticated request
// pushes expiry out to now + SessionTTL.
const SessionTTL = 30 * time.Minute

// OpenRedisPool initializes a Redis connection pool
func OpenRedisPool(dsn string) *redis.Client {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		log.Fatalf("Failed to parse Redis DSN: %v", err)
	}

	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err = client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis: %v", err)
	}

	return client
}

// StoreSession saves a session in Redis with the sliding TTL.
func StoreSession(client *redis.Client, session models.Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessionMap := map[string]any{
		"user_id":       strconv.Itoa(session.UserID),
		"username":      session.Username,
		"created_at":    session.CreatedAt,
		"last_activity": session.LastActivity,
	}

	key := "session:" + session.Token
	if err := client.HSet(ctx, key, sessionMap).Err(); err != nil {
		return err
	}

	return client.Expire(ctx, key, SessionTTL).Err()
}

// GetSession retrieves session details from Redis
func GetSession(client *redis.Client, sessionToken string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := "session:" + sessionToken

	data, err := client.HGetAll(ctx, key).Result()
	if err != nil || len(data) == 0 {
		return nil, fmt.Errorf("session not found")
	}

	userID, err := strconv.Atoi(data["user_id"])
	if err != nil {
		return nil, fmt.Errorf("corrupt session: %w", err)
	}

	session := &models.Session{
		Token:        sessionToken,
		UserID:       userID,
		Username:     data["username"],
		CreatedAt:    data["created_at"],
		LastActivity: data["last_activity"],
	}

	return session, nil
}

// DeleteSession removes a session from Redis
func DeleteSession(client *redis.Client, sessionToken string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.Del(ctx, "session:"+sessionToken).Err()
}

// RefreshSession slides the session expiry forward and records activity.
func RefreshSession(client *redis.Client, sessionToken string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := "session:" + sessionToken
	if err := client.HSet(ctx, key, "last_activity", time.Now().Format(time.RFC3339)).Err(); err != nil {
		return err
	}
	return client.Expire(ctx, key, SessionTTL).Err()
}
