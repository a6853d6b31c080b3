package assistant

import (
	"context"
	"log/slog"
	"time"
)

// Reply generation modes accepted from configuration.
const (
	ConfigModeAuto     = "auto"
	ConfigModeScripted = "scripted"
	ConfigModeOpenAI   = "openai"
)

const unavailablePrefix = "I'm having trouble connecting to the AI brain right now. "

// defaultScriptedDelay simulates remote latency so scripted replies do not
// return unnaturally fast.
const defaultScriptedDelay = time.Second

type ServiceConfig struct {
	// Client is the remote backend; nil means scripted replies only.
	Client Client
	Mode   string
	// Delay overrides the artificial scripted-reply latency.
	Delay time.Duration
}

type Service struct {
	client Client
	mode   string
	delay  time.Duration
}

func NewService(cfg ServiceConfig) *Service {
	delay := cfg.Delay
	if delay == 0 {
		delay = defaultScriptedDelay
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ConfigModeAuto
	}

	return &Service{
		client: cfg.Client,
		mode:   mode,
		delay:  delay,
	}
}

// Reply answers the conversation. A failing remote backend is recovered by
// falling back to the scripted generator; the only error a caller can see is
// a canceled context.
func (s *Service) Reply(ctx context.Context, messages []Message, bctx Context) (Reply, error) {
	if s.mode == ConfigModeScripted || s.client == nil {
		if err := s.wait(ctx); err != nil {
			return Reply{}, err
		}

		return Reply{Text: scriptedReply(bctx), Mode: ModeScripted}, nil
	}

	text, err := s.client.Chat(ctx, messages, bctx)
	if err != nil {
		if ctx.Err() != nil {
			return Reply{}, ctx.Err()
		}

		slog.Warn("assistant backend failed, using scripted fallback", "error", err)

		return Reply{Text: unavailablePrefix + scriptedReply(bctx), Mode: ModeFallback}, nil
	}

	return Reply{Text: text, Mode: ModeOpenAI}, nil
}

func (s *Service) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.delay):
		return nil
	}
}
