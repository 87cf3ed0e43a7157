package finance

// =============================================================================
// COMPREHENSIVE ANALYSIS
// Composes ROI, NPV, IRR, and both paybacks, then maps a heuristic
// 0-7 score to a recommendation band. The thresholds are policy, not a
// law of finance; override ScorePolicy to recalibrate.
// =============================================================================

// ScorePolicy holds the recommendation thresholds.
type ScorePolicy struct {
	ROIThresholdPercent float64 `json:"roi_threshold_percent"` // points when ROI exceeds this
	PaybackLimitPeriods float64 `json:"payback_limit_periods"` // point when payback is at most this
}

// DefaultScorePolicy returns the standard thresholds: ROI above 15%
// and payback within 3 periods.
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{
		ROIThresholdPercent: 15.0,
		PaybackLimitPeriods: 3.0,
	}
}

// Recommendation bands, best to worst.
const (
	HighlyRecommended = "Highly Recommended"
	Recommended       = "Recommended"
	Marginal          = "Marginal"
	NotRecommended    = "Not Recommended"
)

// AnalysisResult bundles every metric with the recommendation.
type AnalysisResult struct {
	ROI               ROIResult     `json:"roi"`
	NPV               NPVResult     `json:"npv"`
	IRR               IRRResult     `json:"irr"`
	Payback           PaybackResult `json:"payback"`
	DiscountedPayback PaybackResult `json:"discounted_payback"`
	Score             int           `json:"score"` // 0-7
	Recommendation    string        `json:"recommendation"`
}

// Analyze runs the full metric suite over one series. Total return for
// the ROI component is the plain sum of the period flows.
//
// Scoring: NPV > 0 is +2, ROI above threshold is +2, IRR above the
// discount rate is +2 (only when converged), payback within the limit
// is +1.
func Analyze(series CashFlowSeries, policy ScorePolicy) (AnalysisResult, error) {
	npv, err := NPV(series)
	if err != nil {
		return AnalysisResult{}, err
	}

	var totalReturn float64
	for _, flow := range series.Flows {
		totalReturn += flow
	}
	roi, err := ROI(series.InitialInvestment, totalReturn)
	if err != nil {
		return AnalysisResult{}, err
	}

	irr, err := IRR(series)
	if err != nil {
		return AnalysisResult{}, err
	}

	payback, err := Payback(series)
	if err != nil {
		return AnalysisResult{}, err
	}
	discPayback, err := DiscountedPayback(series)
	if err != nil {
		return AnalysisResult{}, err
	}

	score := 0
	if npv.NPV > 0 {
		score += 2
	}
	if roi.ROIPercent > policy.ROIThresholdPercent {
		score += 2
	}
	if irr.Converged && irr.Rate > series.DiscountRate {
		score += 2
	}
	if payback.Determinate && payback.Periods <= policy.PaybackLimitPeriods {
		score++
	}

	return AnalysisResult{
		ROI:               roi,
		NPV:               npv,
		IRR:               irr,
		Payback:           payback,
		DiscountedPayback: discPayback,
		Score:             score,
		Recommendation:    recommendation(score),
	}, nil
}

func recommendation(score int) string {
	switch {
	case score >= 6:
		return HighlyRecommended
	case score >= 4:
		return Recommended
	case score >= 2:
		return Marginal
	default:
		return NotRecommended
	}
}
