package catalog

import "codeberg.org/pixelgate/server/internal/plans"

// Model describes one text-to-image model the gateway forwards to
type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	MaxResolution int    `json:"max_resolution"`
	Default       bool   `json:"default"`
}

// Catalog is the fixed set of models callers may request
type Catalog struct {
	models       []Model
	index        map[string]int
	defaultModel string
}

var builtin = []Model{
	{
		ID:            "stabilityai/stable-diffusion-xl-base-1.0",
		Name:          "Stable Diffusion XL",
		Description:   "high quality general purpose images, best at 1024x1024",
		MaxResolution: plans.MaxDimension,
	},
	{
		ID:            "stabilityai/stable-diffusion-2-1",
		Name:          "Stable Diffusion 2.1",
		Description:   "general purpose images at 768x768",
		MaxResolution: 768,
	},
	{
		ID:            "runwayml/stable-diffusion-v1-5",
		Name:          "Stable Diffusion 1.5",
		Description:   "fast general purpose images at 512x512",
		MaxResolution: 512,
	},
}

// builds the catalog with the configured default model flagged, adding it first when unlisted
func New(defaultModel string) *Catalog {
	c := &Catalog{
		models:       make([]Model, 0, len(builtin)+1),
		index:        make(map[string]int, len(builtin)+1),
		defaultModel: defaultModel,
	}

	found := false
	for _, m := range builtin {
		m.Default = m.ID == defaultModel
		found = found || m.Default
		c.models = append(c.models, m)
	}

	if !found {
		c.models = append([]Model{{
			ID:            defaultModel,
			Name:          defaultModel,
			Description:   "configured default model",
			MaxResolution: plans.MaxDimension,
			Default:       true,
		}}, c.models...)
	}

	for i, m := range c.models {
		c.index[m.ID] = i
	}

	return c
}

// reports whether id is a model callers may request. ids are matched exactly.
func (c *Catalog) Supports(id string) bool {
	_, ok := c.index[id]
	return ok
}

func (c *Catalog) Default() string {
	return c.defaultModel
}

// returns a copy of all models, default first when it was added
func (c *Catalog) All() []Model {
	out := make([]Model, len(c.models))
	copy(out, c.models)
	return out
}
