package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		client string
		server string
		want   bool
	}{
		{"1.2.3", "1.2.3", true},
		{"1.2.0", "1.3.0", true},
		{"1.3.0", "1.2.9", true},
		{"1.2.0", "1.4.0", false},
		{"1.2.0", "2.2.0", false},
		{"1.16.1", "1.16.0", true},
		{"bad", "1.0.0", false},
		{"1.0.0", "", false},
		{"1", "1.0.0", false},
		{"dev", "dev", true},
	}

	for _, tt := range tests {
		t.Run(tt.client+"_"+tt.server, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompatible(tt.client, tt.server))
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.16.1-rc.2")
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 1, Minor: 16}, v)
	assert.Equal(t, "1.16", v.String())

	_, err = ParseVersion("x.1")
	assert.Error(t, err)
}

func staticProbe(version string, err error) VersionProbe {
	return func(context.Context) (string, error) { return version, err }
}

func TestCheckCompatibility_Compatible(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)

	res := CheckCompatibility(context.Background(), staticProbe("1.15.4", nil), "1.16.1", log)
	assert.Equal(t, Compatible, res)
}

func TestCheckCompatibility_Incompatible(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any(), gomock.Nil(), gomock.Any()).Times(1)

	res := CheckCompatibility(context.Background(), staticProbe("1.10.0", nil), "1.16.1", log)
	assert.Equal(t, Incompatible, res)
}

func TestCheckCompatibility_ProbeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)
	probeErr := errors.New("connection refused")
	log.EXPECT().Warn(gomock.Any(), probeErr, gomock.Any()).Times(1)

	res := CheckCompatibility(context.Background(), staticProbe("", probeErr), "1.16.1", log)
	assert.Equal(t, Unverified, res)
}

func TestCheckCompatibility_EmptyVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	res := CheckCompatibility(context.Background(), staticProbe("", nil), "1.16.1", log)
	assert.Equal(t, Unverified, res)
}

func TestCheckCompatibility_UnparseableServerVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any(), gomock.Not(gomock.Nil()), gomock.Any()).Times(1)

	res := CheckCompatibility(context.Background(), staticProbe("nightly", nil), "1.16.1", log)
	assert.Equal(t, Unverified, res)
}

func TestCheckCompatibility_NilLogger(t *testing.T) {
	res := CheckCompatibility(context.Background(), staticProbe("", errors.New("down")), "1.16.1", nil)
	assert.Equal(t, Unverified, res)
}

func TestStartCompatibilityCheck(t *testing.T) {
	done := StartCompatibilityCheck(context.Background(), staticProbe(ClientVersion, nil), ClientVersion, nil)

	select {
	case res, ok := <-done:
		require.True(t, ok)
		assert.Equal(t, Compatible, res)
	case <-time.After(time.Second):
		t.Fatal("compatibility check did not finish")
	}

	_, ok := <-done
	assert.False(t, ok, "channel should be closed after the result")
}

func TestStartCompatibilityCheck_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	probe := func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}

	done := StartCompatibilityCheck(ctx, probe, ClientVersion, nil)
	cancel()

	select {
	case res := <-done:
		assert.Equal(t, Unverified, res)
	case <-time.After(time.Second):
		t.Fatal("cancelled check did not finish")
	}
}
