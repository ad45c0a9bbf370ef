package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new calculations
	DefaultFlatWidth   float64 `json:"default_flat_width"`
	DefaultPeakHeight  float64 `json:"default_peak_height"`
	DefaultFoldAngle   float64 `json:"default_fold_angle"`
	DefaultTotalLength float64 `json:"default_total_length"`
	DefaultCostPerBend float64 `json:"default_cost_per_bend"`

	// Output preferences
	CurrencySymbol string `json:"currency_symbol"` // Printed in front of costs
	BendProfile    string `json:"bend_profile"`    // Bend program post-processor name
	ChartFormat    string `json:"chart_format"`    // "png", "svg" or "pdf"

	// Application preferences
	LogLevel      string   `json:"log_level"` // "debug", "info", "warn", "error"
	RecentExports []string `json:"recent_exports"`
	Theme         string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultParams().
func DefaultAppConfig() AppConfig {
	defaults := DefaultParams()
	return AppConfig{
		DefaultFlatWidth:   defaults.FlatWidth,
		DefaultPeakHeight:  defaults.PeakHeight,
		DefaultFoldAngle:   defaults.FoldAngle,
		DefaultTotalLength: defaults.TotalLength,
		DefaultCostPerBend: defaults.CostPerBend,
		CurrencySymbol:     "฿",
		BendProfile:        "Generic",
		ChartFormat:        "png",
		LogLevel:           "info",
		RecentExports:      []string{},
		Theme:              "system",
	}
}

// Params returns the configured default parameters.
func (c AppConfig) Params() Params {
	p := Params{}
	c.ApplyToParams(&p)
	return p
}

// ApplyToParams copies the default values from AppConfig into p.
func (c AppConfig) ApplyToParams(p *Params) {
	p.FlatWidth = c.DefaultFlatWidth
	p.PeakHeight = c.DefaultPeakHeight
	p.FoldAngle = c.DefaultFoldAngle
	p.TotalLength = c.DefaultTotalLength
	p.CostPerBend = c.DefaultCostPerBend
}

// AddRecentExport records path as the most recent export, keeping at most
// maxRecentExports entries without duplicates.
func (c *AppConfig) AddRecentExport(path string) {
	recent := []string{path}
	for _, p := range c.RecentExports {
		if p != path && len(recent) < maxRecentExports {
			recent = append(recent, p)
		}
	}
	c.RecentExports = recent
}

const maxRecentExports = 10
