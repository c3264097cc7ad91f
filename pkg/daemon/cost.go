package daemon

import "moltworks/replygate/pkg/config"

// EstimateTokens approximates the token count of text from its character
// length. Used when the provider does not report token counts.
func EstimateTokens(text string, charsPerToken float64) int {
	if charsPerToken <= 0 {
		charsPerToken = config.DefaultCharsPerToken
	}
	if len(text) == 0 {
		return 0
	}
	n := int(float64(len(text)) / charsPerToken)
	if n < 1 {
		n = 1
	}
	return n
}

// EstimateCostUSD converts input and output token counts into a dollar
// estimate using per-million-token pricing.
func EstimateCostUSD(inputTokens, outputTokens int, pricing config.PricingConfig) float64 {
	in := float64(inputTokens) / 1e6 * pricing.USDPer1MInputTokens
	out := float64(outputTokens) / 1e6 * pricing.USDPer1MOutputTokens
	return in + out
}

// estimateCallCost derives the cost of a generation, preferring the
// provider-reported token counts and falling back to character estimates.
func estimateCallCost(prompt string, res GenerationResult, pricing config.PricingConfig) float64 {
	in := res.InputTokens
	out := res.OutputTokens
	if in == 0 {
		in = EstimateTokens(prompt, pricing.CharsPerToken)
	}
	if out == 0 {
		out = EstimateTokens(res.Text, pricing.CharsPerToken)
	}
	return EstimateCostUSD(in, out, pricing)
}
