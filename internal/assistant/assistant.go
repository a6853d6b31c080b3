// Package assistant generates natural-language replies about the business,
// either through a remote chat-completion backend or a small scripted rule
// table. The remote path is optional: when it is unconfigured or failing, the
// scripted generator always answers, so callers never see an error from a
// missing backend.
package assistant

import (
	"context"
	"fmt"

	"github.com/mfreitas/tally/internal/ledger"
)

// Client is a remote reply backend.
type Client interface {
	Chat(ctx context.Context, messages []Message, bctx Context) (string, error)
}

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Context carries the business snapshot a reply should be grounded in.
type Context struct {
	Metrics          *ledger.Metrics
	TransactionCount int
	CustomerCount    int
	DebtCount        int
}

// Summary renders the context for embedding into a prompt.
func (c Context) Summary() string {
	s := "No business data recorded yet."

	if c.Metrics != nil {
		s = fmt.Sprintf("Total revenue %s, total expenses %s, net income %s.",
			c.Metrics.TotalRevenue.StringFixed(2),
			c.Metrics.TotalExpenses.StringFixed(2),
			c.Metrics.NetIncome.StringFixed(2))
	}

	return fmt.Sprintf("%s Records: %d transactions, %d customers, %d debts.",
		s, c.TransactionCount, c.CustomerCount, c.DebtCount)
}

// Mode indicates which source produced a reply.
type Mode string

const (
	ModeScripted Mode = "scripted"
	ModeOpenAI   Mode = "openai"
	ModeFallback Mode = "fallback-scripted"
)

// Reply is a generated answer plus the source that produced it.
type Reply struct {
	Text string `json:"reply"`
	Mode Mode   `json:"mode"`
}
