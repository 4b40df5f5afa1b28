// Package usage implements the token bookkeeping attached to every photo
// record: cumulative per-photo accounting, even amortization of batched call
// costs, and the derived monetary estimate shown in the UI.
package usage

// Pricing holds the provider's per-million-token prices and the exchange rate
// used for display. These are operational constants from configuration, never
// persisted: the monetary figure is reproducible from the two token counts.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
	FXRate           float64
}

// Accumulate adds one call's token usage to a record's running totals.
// Pure; persistence of the result is the caller's concern.
// Parameters:
//   - existingInput, existingOutput: the record's current cumulative counts.
//   - deltaInput, deltaOutput: this call's usage as reported by the provider.
// Returns:
//   - int64: new cumulative input token count.
//   - int64: new cumulative output token count.
func Accumulate(existingInput, existingOutput, deltaInput, deltaOutput int64) (int64, int64) {
	return existingInput + deltaInput, existingOutput + deltaOutput
}

// Amortize distributes one batched call's token totals evenly across every
// item it classified, using ceiling division so the ledger never
// under-reports spend. The sum of the per-item amounts exceeds the actual
// total by at most itemCount-1 tokens; that overcount is accepted and
// preferred over silent loss.
// Parameters:
//   - totalInput, totalOutput: the call's token totals.
//   - itemCount: number of items in the batch; must be positive.
// Returns:
//   - int64: per-item input tokens.
//   - int64: per-item output tokens.
func Amortize(totalInput, totalOutput int64, itemCount int) (int64, int64) {
	n := int64(itemCount)
	return ceilDiv(totalInput, n), ceilDiv(totalOutput, n)
}

// EstimateCost converts cumulative token counts into a monetary figure using
// the configured pricing.
// Parameters:
//   - inputTokens, outputTokens: cumulative counts to price.
//   - p: per-million-token prices and FX rate.
// Returns:
//   - float64: estimated cost in the display currency.
func EstimateCost(inputTokens, outputTokens int64, p Pricing) float64 {
	usd := (float64(inputTokens)*p.InputPerMillion + float64(outputTokens)*p.OutputPerMillion) / 1_000_000
	return usd * p.FXRate
}

func ceilDiv(total, n int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + n - 1) / n
}
