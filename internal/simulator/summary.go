package simulator

// Summary is the outcome of a single simulator run.
type Summary struct {
	InitialCapital      float64
	FinalPortfolioValue float64
	ROI                 float64
	NumTrades           int
	EstimatedFeesPaid   float64
	Trades              []Trade
}

func summarize(initialCapital, currentCash, held, lastPrice float64, trades []Trade, genericFee float64) Summary {
	finalValue := currentCash + held*lastPrice
	fees := 0.0
	for _, tr := range trades {
		fees += tr.Price * tr.Amount * genericFee
	}
	return Summary{
		InitialCapital:      initialCapital,
		FinalPortfolioValue: finalValue,
		ROI:                 (finalValue - initialCapital) / initialCapital * 100,
		NumTrades:           len(trades),
		EstimatedFeesPaid:   fees,
		Trades:              trades,
	}
}
