package models

import "strings"

// ForecastRecord is one row of a forecast toplines file before variant
// filtering: the district identifier, the model-variant tag, and the two
// parties' win probabilities.
type ForecastRecord struct {
	District   string  `json:"district"`
	Expression string  `json:"expression"`
	WinProbD   float64 `json:"win_prob_d"`
	WinProbR   float64 `json:"win_prob_r"`
}

// Region returns the district prefix before the first dash ("OH-S3" -> "OH").
// Districts without a dash are their own region.
func (f *ForecastRecord) Region() string {
	if i := strings.Index(f.District, "-"); i >= 0 {
		return f.District[:i]
	}
	return f.District
}
