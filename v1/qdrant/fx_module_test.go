package qdrant

import (
	"context"
	"testing"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestFXModule_ClosesOnStop(t *testing.T) {
	var client *Client
	app := fxtest.New(t,
		fx.Supply(DefaultConfig().WithCompatibilityCheck(false)),
		fx.Provide(func() logger.Logger { return logger.NewNop() }),
		FXModule,
		fx.Populate(&client),
	)
	app.RequireStart()
	require.NotNil(t, client)
	assert.Equal(t, "127.0.0.1:6334", client.Connection().Address())

	app.RequireStop()

	_, err := client.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Equal(t, codes.Canceled, status.Code(err))
}
