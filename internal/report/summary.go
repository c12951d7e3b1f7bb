package report

import (
	"fmt"

	"rateorder/domain/kinetics"

	"github.com/montanaflynn/stats"
)

// Summary is the display-ready view of a selection result
type Summary struct {
	Order        int                `json:"order"`
	Slope        float64            `json:"slope"`
	Intercept    float64            `json:"intercept"`
	RateConstant float64            `json:"rate_constant"`
	RSquared     float64            `json:"r_squared"`
	PValue       float64            `json:"p_value"`
	StdErr       float64            `json:"std_err"`
	YLabel       string             `json:"y_label"`
	Title        string             `json:"title"`
	Legend       string             `json:"legend"`
	Data         SeriesStats        `json:"data"`
	Candidates   []CandidateSummary `json:"candidates"`
}

// CandidateSummary describes one tried order
type CandidateSummary struct {
	Order    int     `json:"order"`
	YLabel   string  `json:"y_label,omitempty"`
	Viable   bool    `json:"viable"`
	RSquared float64 `json:"r_squared,omitempty"`
	Slope    float64 `json:"slope,omitempty"`
	Reason   string  `json:"reason,omitempty"`
}

// SeriesStats summarizes the raw measurements
type SeriesStats struct {
	Points          int     `json:"points"`
	TimeMin         float64 `json:"time_min"`
	TimeMax         float64 `json:"time_max"`
	ConcentrationC0 float64 `json:"concentration_initial"`
	ConcentrationMn float64 `json:"concentration_mean"`
	ConcentrationSd float64 `json:"concentration_std_dev"`
}

// Summarize builds the summary for best computed from series
func Summarize(series kinetics.Series, best *kinetics.BestFit) Summary {
	s := Summary{
		Order:        int(best.Order),
		Slope:        best.Slope,
		Intercept:    best.Intercept,
		RateConstant: best.RateConstant(),
		RSquared:     best.RSquared,
		PValue:       best.Fit.PValue,
		StdErr:       best.Fit.StdErr,
		YLabel:       best.YLabel,
		Title:        fmt.Sprintf("Integrated Rate Law Fit (Order %d)", best.Order),
		Data:         describe(series),
	}
	s.Legend = fmt.Sprintf("Fit: slope = %.4f, k = %.4e, R² = %.4f", s.Slope, s.RateConstant, s.RSquared)

	for _, c := range best.Candidates {
		cs := CandidateSummary{Order: int(c.Order), Viable: c.Viable(), Reason: c.Reason()}
		if c.Viable() {
			cs.YLabel = c.Transform.YLabel
			cs.RSquared = c.Fit.RSquared
			cs.Slope = c.Fit.Slope
		}
		s.Candidates = append(s.Candidates, cs)
	}
	return s
}

func describe(series kinetics.Series) SeriesStats {
	out := SeriesStats{Points: series.Len()}
	if series.Len() == 0 {
		return out
	}
	out.TimeMin, _ = stats.Min(series.Time)
	out.TimeMax, _ = stats.Max(series.Time)
	out.ConcentrationC0 = series.Concentration[0]
	out.ConcentrationMn, _ = stats.Mean(series.Concentration)
	out.ConcentrationSd, _ = stats.StandardDeviation(series.Concentration)
	return out
}
