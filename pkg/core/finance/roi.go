package finance

import (
	"fmt"

	"project_economics/pkg/core/calcerr"
)

// =============================================================================
// RETURN ON INVESTMENT
// =============================================================================

// ROIResult holds the return percentage and absolute profit.
type ROIResult struct {
	ROIPercent     float64 `json:"roi_percent"`
	NetProfit      float64 `json:"net_profit"`
	Interpretation string  `json:"interpretation"`
}

// ROI computes the simple return on investment.
//
// FORMULA: ROI = (totalReturn - totalInvestment) / totalInvestment
func ROI(totalInvestment, totalReturn float64) (ROIResult, error) {
	if totalInvestment <= 0 {
		return ROIResult{}, fmt.Errorf("%w: investment must be positive, got %v", calcerr.ErrInvalidInput, totalInvestment)
	}

	profit := totalReturn - totalInvestment
	return ROIResult{
		ROIPercent:     profit / totalInvestment * 100,
		NetProfit:      profit,
		Interpretation: interpret(profit),
	}, nil
}
