package plans

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed plans.yaml
var defaultPlans []byte

// returns the built-in plan table
func Default() *Table {
	t, err := Parse(defaultPlans)
	if err != nil {
		panic(fmt.Sprintf("embedded plan table is invalid: %v", err))
	}

	return t
}

// loads the plan table from a YAML file; an empty path selects the built-in table
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("failed to read plans file: %w", err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid plans file %s: %w", path, err)
	}

	return t, nil
}

// parses and validates a YAML plan table. plans are listed lowest tier first.
func Parse(data []byte) (*Table, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse plans: %w", err)
	}

	if len(f.Plans) == 0 {
		return nil, fmt.Errorf("no plans defined")
	}

	t := &Table{
		plans: make([]Plan, 0, len(f.Plans)),
		index: make(map[string]int, len(f.Plans)),
	}

	for i, p := range f.Plans {
		p.ID = strings.ToLower(strings.TrimSpace(p.ID))

		if p.ID == "" {
			return nil, fmt.Errorf("plan %d has no id", i)
		}

		if _, dup := t.index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate plan id %q", p.ID)
		}

		if p.MaxDimension < MinDimension || p.MaxDimension > MaxDimension {
			return nil, fmt.Errorf("plan %q max_dimension %d outside [%d, %d]", p.ID, p.MaxDimension, MinDimension, MaxDimension)
		}

		if p.DailyLimit < 0 {
			return nil, fmt.Errorf("plan %q daily_limit must not be negative", p.ID)
		}

		if p.Name == "" {
			p.Name = p.ID
		}

		t.index[p.ID] = len(t.plans)
		t.plans = append(t.plans, p)
	}

	return t, nil
}

// returns the plan matching a caller-supplied hint.
// matching is case-insensitive; an absent or unknown hint yields the default plan.
func (t *Table) Resolve(hint string) Plan {
	if p, ok := t.Get(hint); ok {
		return p
	}

	return t.DefaultPlan()
}

// looks up a plan by id
func (t *Table) Get(id string) (Plan, bool) {
	i, ok := t.index[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Plan{}, false
	}

	return t.plans[i], true
}

// the lowest tier
func (t *Table) DefaultPlan() Plan {
	return t.plans[0]
}

// returns the plan one tier above p; false for the top tier or an unknown plan
func (t *Table) Next(p Plan) (Plan, bool) {
	i, ok := t.index[p.ID]
	if !ok || i+1 >= len(t.plans) {
		return Plan{}, false
	}

	return t.plans[i+1], true
}

// returns a copy of all plans, lowest tier first
func (t *Table) All() []Plan {
	out := make([]Plan, len(t.plans))
	copy(out, t.plans)
	return out
}
