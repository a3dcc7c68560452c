package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB talks to a SurrealDB instance over its websocket RPC endpoint.
// The zero value is unusable; construct it with NewSurrealDB and call
// Connect before handing it to repositories.
type SurrealDB struct {
	conn *surrealdb.DB
	cfg  Config
}

func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{cfg: cfg}
}

// Connect dials the endpoint, signs in and selects the configured
// namespace and database. Partial setup failures close the connection.
func (s *SurrealDB) Connect(ctx context.Context) error {
	conn, err := surrealdb.FromEndpointURLString(ctx, fmt.Sprintf("ws://%s:%s", s.cfg.Host, s.cfg.Port))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if _, err := conn.SignIn(ctx, &surrealdb.Auth{
		Username: s.cfg.User,
		Password: s.cfg.Password,
	}); err != nil {
		_ = conn.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := conn.Use(ctx, s.cfg.Namespace, s.cfg.Database); err != nil {
		_ = conn.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.conn = conn
	return nil
}

func (s *SurrealDB) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close(context.Background())
}

// Ping verifies the connection is alive via a version round trip
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.conn == nil {
		return ErrConnection
	}
	if _, err := s.conn.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query runs a SurrealQL statement and returns one envelope per statement
// result, each a map of the form {status, result}. Repositories unwrap the
// envelopes with their parsing helpers.
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.conn == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.conn, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil {
		return nil, nil
	}

	envelopes := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
		envelopes = append(envelopes, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}
	return envelopes, nil
}

// QueryOne runs a statement expected to yield a single record and returns
// it unwrapped. ErrNotFound when the statement matched nothing.
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	envelopes, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(envelopes) == 0 {
		return nil, ErrNotFound
	}

	envelope, ok := envelopes[0].(map[string]interface{})
	if !ok {
		return envelopes[0], nil
	}

	switch result := envelope["result"].(type) {
	case []interface{}:
		if len(result) == 0 {
			return nil, ErrNotFound
		}
		return result[0], nil
	default:
		// Scalar statements (counts, booleans) come back unwrapped
		return result, nil
	}
}

// Execute runs a statement whose results the caller does not need
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}
