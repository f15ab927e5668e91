package model

import (
	"encoding/json"
)

// ChartType is a Chart.js chart type
type ChartType string

const (
	ChartLine     ChartType = "line"
	ChartDoughnut ChartType = "doughnut"
	ChartBar      ChartType = "bar"
)

// ChartSpec is everything the client script needs to build one chart.
// Field names follow Chart.js so a ChartSpec can be handed to the script unchanged.
type ChartSpec struct {
	Canvas   string    `json:"canvas"`
	Type     ChartType `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	// PercentTooltip appends '%' to tooltip values
	PercentTooltip bool `json:"percentTooltip,omitempty"`
	// Axes enables the shared x/y scale options (not used by doughnuts)
	Axes bool `json:"axes,omitempty"`
}

// Dataset is one Chart.js dataset
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     Colors    `json:"borderColor,omitempty"`
	BackgroundColor Colors    `json:"backgroundColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

// Sum returns the total of the dataset values
func (d Dataset) Sum() float64 {
	var total float64
	for _, v := range d.Data {
		total += v
	}
	return total
}

// Colors is one color or a per-point color list. A single color encodes as
// a JSON string, more than one as an array, matching what Chart.js accepts.
type Colors []string

// MarshalJSON implements json.Marshaler
func (c Colors) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Colors) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = Colors{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = many
	return nil
}
