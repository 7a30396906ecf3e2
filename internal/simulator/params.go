package simulator

// Params is the immutable configuration bundle spec §3 defines. The zero
// value is not meaningful — always start from DefaultParams.
type Params struct {
	InitialCapital             float64
	InitialInvestmentFraction  float64
	DCABuyThreshold            float64
	DCABuyFraction             float64
	ProfitSellThreshold        float64
	ProfitSellFraction         float64
	GenericFee                 float64

	// BuyThreshold and SellThreshold are the legacy count-threshold fields.
	// The weighted scorer (internal/scorer) supersedes them; they are kept
	// only so configuration carried over from an older deployment still
	// deserializes without error.
	BuyThreshold  int
	SellThreshold int
}

// DefaultParams returns the defaults listed in spec §3.
func DefaultParams() Params {
	return Params{
		InitialCapital:            10000,
		InitialInvestmentFraction: 0.35,
		DCABuyThreshold:           0.10,
		DCABuyFraction:            0.75,
		ProfitSellThreshold:       0.20,
		ProfitSellFraction:        0.40,
		GenericFee:                0.005,
		BuyThreshold:              3,
		SellThreshold:             2,
	}
}
