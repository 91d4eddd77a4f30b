package plans

// Plan is one subscription tier. Plans are loaded once at start and never change.
type Plan struct {
	ID           string  `yaml:"id" json:"id"`
	Name         string  `yaml:"name" json:"name"`
	MaxDimension int     `yaml:"max_dimension" json:"max_resolution"`
	Price        float64 `yaml:"price" json:"price"`
	DailyLimit   int64   `yaml:"daily_limit" json:"daily_limit"` // 0 means unlimited
}

// Table is the ordered, immutable set of plans
type Table struct {
	plans []Plan
	index map[string]int
}

type file struct {
	Plans []Plan `yaml:"plans"`
}

const (
	// global bounds every plan must sit inside
	MinDimension = 64
	MaxDimension = 1024
)
