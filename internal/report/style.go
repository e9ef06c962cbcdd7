// Package report renders analysis results for the presentation layer. It
// emits series, statistics, and styling; drawing figures is the chart
// front-end's job.
package report

// Style is an explicit styling configuration handed to the presentation
// layer. The original analysis kept this as process-wide mutable plotting
// state; here it is a value loaded from YAML and passed along.
type Style struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	TimeFormat  string                  `yaml:"time_format"`
	Figure      FigureStyle             `yaml:"figure"`
	Channels    map[string]ChannelStyle `yaml:"channels"`
	MoodColors  []string                `yaml:"mood_colors"`
}

// FigureStyle holds figure geometry for chart front-ends.
type FigureStyle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	DPI    int     `yaml:"dpi"`
}

// ChannelStyle holds per-channel presentation attributes.
type ChannelStyle struct {
	Label string `yaml:"label"`
	Unit  string `yaml:"unit"`
	Color string `yaml:"color"`
}

// ChannelLabel returns the display label for a channel, falling back to the
// raw channel name.
func (s *Style) ChannelLabel(channel string) string {
	if cs, ok := s.Channels[channel]; ok && cs.Label != "" {
		if cs.Unit != "" {
			return cs.Label + " (" + cs.Unit + ")"
		}
		return cs.Label
	}
	return channel
}
