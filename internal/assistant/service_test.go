package assistant_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitas/tally/internal/assistant"
	"github.com/mfreitas/tally/internal/ledger"
)

type stubClient struct {
	reply string
	err   error
}

func (c *stubClient) Chat(_ context.Context, _ []assistant.Message, _ assistant.Context) (string, error) {
	return c.reply, c.err
}

func metricsWithNet(net int64) *ledger.Metrics {
	return &ledger.Metrics{
		TotalRevenue:  decimal.NewFromInt(max(net, 0)),
		TotalExpenses: decimal.NewFromInt(max(-net, 0)),
		NetIncome:     decimal.NewFromInt(net),
	}
}

func TestService_Reply_ScriptedMode(t *testing.T) {
	svc := assistant.NewService(assistant.ServiceConfig{
		Mode:  assistant.ConfigModeScripted,
		Delay: time.Millisecond,
	})

	got, err := svc.Reply(context.Background(), nil, assistant.Context{Metrics: metricsWithNet(100)})
	require.NoError(t, err)
	assert.Equal(t, assistant.ModeScripted, got.Mode)
	assert.NotEmpty(t, got.Text)
}

func TestService_Reply_NegativeNetIncomeRule(t *testing.T) {
	svc := assistant.NewService(assistant.ServiceConfig{
		Mode:  assistant.ConfigModeScripted,
		Delay: time.Millisecond,
	})

	got, err := svc.Reply(context.Background(), nil, assistant.Context{Metrics: metricsWithNet(-50)})
	require.NoError(t, err)
	assert.Contains(t, got.Text, "net income is currently negative")
}

func TestService_Reply_NoClientFallsBackToScripted(t *testing.T) {
	// Auto mode without a configured backend behaves as scripted.
	svc := assistant.NewService(assistant.ServiceConfig{
		Mode:  assistant.ConfigModeAuto,
		Delay: time.Millisecond,
	})

	got, err := svc.Reply(context.Background(), nil, assistant.Context{})
	require.NoError(t, err)
	assert.Equal(t, assistant.ModeScripted, got.Mode)
}

func TestService_Reply_RemoteSuccess(t *testing.T) {
	svc := assistant.NewService(assistant.ServiceConfig{
		Client: &stubClient{reply: "Revenue is up 12% this quarter."},
		Mode:   assistant.ConfigModeAuto,
		Delay:  time.Millisecond,
	})

	got, err := svc.Reply(context.Background(), []assistant.Message{
		{Role: "user", Content: "How is my revenue?"},
	}, assistant.Context{})
	require.NoError(t, err)
	assert.Equal(t, assistant.ModeOpenAI, got.Mode)
	assert.Equal(t, "Revenue is up 12% this quarter.", got.Text)
}

func TestService_Reply_RemoteFailureFallsBack(t *testing.T) {
	svc := assistant.NewService(assistant.ServiceConfig{
		Client: &stubClient{err: errors.New("connection refused")},
		Mode:   assistant.ConfigModeOpenAI,
		Delay:  time.Millisecond,
	})

	got, err := svc.Reply(context.Background(), nil, assistant.Context{Metrics: metricsWithNet(-10)})
	require.NoError(t, err, "backend failure must never surface to the caller")
	assert.Equal(t, assistant.ModeFallback, got.Mode)
	assert.True(t, strings.HasPrefix(got.Text, "I'm having trouble connecting"))
	assert.Contains(t, got.Text, "net income is currently negative")
}

func TestService_Reply_CanceledContext(t *testing.T) {
	svc := assistant.NewService(assistant.ServiceConfig{
		Mode: assistant.ConfigModeScripted,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Reply(ctx, nil, assistant.Context{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestContext_Summary(t *testing.T) {
	c := assistant.Context{
		Metrics:          metricsWithNet(60),
		TransactionCount: 2,
		CustomerCount:    1,
	}

	s := c.Summary()
	assert.Contains(t, s, "net income 60.00")
	assert.Contains(t, s, "2 transactions")

	assert.Contains(t, assistant.Context{}.Summary(), "No business data recorded yet")
}
