// Package mongo wraps the MongoDB client with connection lifecycle and
// collection handles for the service's two collections.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	ProfilesCollection        = "profiles"
	AttributeGroupsCollection = "attribute_groups"
	UsersCollection           = "users"
)

// Config holds MongoDB connection settings.
type Config struct {
	URI      string
	Database string
}

// Store owns the client connection and hands out collection handles.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB. The connection is lazy; call
// WaitForReady before serving traffic.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongodb database name is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// WaitForReady pings the server until it responds or the timeout lapses.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.client.Ping(pingCtx, readpref.Primary())
		cancel()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("mongodb not ready after %s: %w", timeout, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// Ping checks server reachability once.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

// Profiles returns the profiles collection.
func (s *Store) Profiles() *mongo.Collection {
	return s.db.Collection(ProfilesCollection)
}

// AttributeGroups returns the attribute groups collection.
func (s *Store) AttributeGroups() *mongo.Collection {
	return s.db.Collection(AttributeGroupsCollection)
}
