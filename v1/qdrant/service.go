package qdrant

import (
	"context"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// HealthCheck asks the server for its title, version and commit.
func (c *Client) HealthCheck(ctx context.Context) (*qdrant.HealthCheckReply, error) {
	reply, err := c.Service().HealthCheck(ctx, &qdrant.HealthCheckRequest{})
	if err != nil {
		return nil, wrap("health_check", err)
	}
	return reply, nil
}
