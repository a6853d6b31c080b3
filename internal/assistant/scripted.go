package assistant

import "math/rand/v2"

var scriptedReplies = []string{
	"Based on your recent data, your revenue is growing steadily. Consider increasing marketing spend.",
	"Cash flow looks positive this month. Good job keeping expenses low.",
	"You have a few overdue debts. I recommend sending a friendly reminder to your customers.",
	"Your top expense category is 'Inventory'. You might want to negotiate better rates with suppliers.",
	"Profit margin is currently at 20%. Industry average is 15%, so you are doing well!",
}

const negativeNetIncomeReply = "Your net income is currently negative. Review your recent expenses to find areas for cost cutting."

// scriptedReply picks an answer from the rule table: a targeted reply when the
// context triggers a rule, otherwise a random canned one.
func scriptedReply(bctx Context) string {
	if bctx.Metrics != nil && bctx.Metrics.NetIncome.IsNegative() {
		return negativeNetIncomeReply
	}

	return scriptedReplies[rand.IntN(len(scriptedReplies))]
}
