package risk

// HistogramBin is one equal-width bucket of the outcome distribution.
// The final bin's upper edge is inclusive.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// buildHistogram buckets sorted outcomes into equal-width bins spanning
// min..max. A degenerate distribution (min == max) collapses to one bin.
func buildHistogram(sorted []float64, bins int) []HistogramBin {
	if len(sorted) == 0 {
		return nil
	}
	min, max := sorted[0], sorted[len(sorted)-1]
	if min == max {
		return []HistogramBin{{Low: min, High: max, Count: len(sorted)}}
	}

	width := (max - min) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Low = min + float64(i)*width
		out[i].High = min + float64(i+1)*width
	}
	out[bins-1].High = max

	for _, v := range sorted {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1 // max lands in the last bin
		}
		out[idx].Count++
	}
	return out
}
