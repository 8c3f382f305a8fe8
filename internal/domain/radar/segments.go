package radar

// Attribute labels, in score order.
const (
	Innovation    = "Innovation"
	Wellness      = "Wellness"
	Value         = "Value"
	Communication = "Communication"
)

// DefaultTitle is the title of the market segmentation chart.
const DefaultTitle = "Smartwatch Market Segmentation - Radar Chart"

// DefaultChart returns the smartwatch market segmentation survey scores.
// A fresh value is built on every call so callers cannot share or mutate it.
func DefaultChart() Chart {
	return Chart{
		Title:  DefaultTitle,
		Labels: []string{Innovation, Wellness, Value, Communication},
		Segments: []Segment{
			{Name: "Tech-Savvy Consumers (347)", Scores: []float64{4.8, 4.5, 3.9, 4.6}},
			{Name: "Business Professionals (246)", Scores: []float64{4.2, 4.1, 3.8, 4.4}},
			{Name: "Fashion-Conscious (207)", Scores: []float64{4.0, 3.9, 4.5, 4.1}},
			{Name: "Fitness Enthusiasts (200)", Scores: []float64{4.1, 4.7, 3.7, 4.0}},
		},
	}
}
