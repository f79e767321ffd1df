package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client owns the MongoDB connection and its reachability state. The
// connected flag is set once during Connect and read-only afterwards;
// handlers consult it before touching a collection so an unreachable
// store degrades to an explicit 503 instead of a misleading auth error.
type Client struct {
	client    *mongo.Client
	db        *mongo.Database
	connected bool
}

// Connect dials MongoDB and pings it. A failed dial or ping still
// returns a usable Client with Connected() == false, so the server can
// come up without a database.
func Connect(ctx context.Context, uri, name string) (*Client, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return &Client{}, fmt.Errorf("mongo connect: %w", err)
	}

	c := &Client{client: cli, db: cli.Database(name)}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := cli.Ping(pingCtx, nil); err != nil {
		return c, fmt.Errorf("mongo ping: %w", err)
	}

	c.connected = true
	return c, nil
}

// Connected reports whether the store was reachable at startup.
func (c *Client) Connected() bool {
	return c.connected
}

// Collection returns a handle into the configured database, or nil when
// the dial never succeeded.
func (c *Client) Collection(name string) *mongo.Collection {
	if c.db == nil {
		return nil
	}
	return c.db.Collection(name)
}

// Close releases the underlying connection. Safe to call on a Client
// that never connected.
func (c *Client) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}
