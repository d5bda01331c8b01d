package charts

import (
	"context"

	"datachat/internal/dataset"
	"datachat/internal/llm"
)

const noDataMessage = "No data loaded. Please load a CSV or Excel file first."

// Outcome is what a capability hands back to the orchestration loop.
// Precondition failures arrive as plain Text with an empty Artifact;
// they are valid results, not faults.
type Outcome struct {
	Text     string
	Artifact string // path of a generated chart image, empty when none
}

// Capability is a named, independently invocable analysis operation.
// The active table is its implicit input.
type Capability interface {
	Name() string
	Description() string
	Invoke(ctx context.Context) Outcome
}

// Registry holds the fixed capability set. It is built once per process
// and never mutated afterwards.
type Registry struct {
	caps   []Capability
	byName map[string]Capability
}

func NewRegistry(holder *dataset.Holder, outputDir string) *Registry {
	w := newArtifactWriter(outputDir)
	caps := []Capability{
		&barChart{holder: holder, out: w},
		&lineChart{holder: holder, out: w},
		&pieChart{holder: holder, out: w},
		&heatmap{holder: holder, out: w},
		&dataInfo{holder: holder},
	}
	byName := make(map[string]Capability, len(caps))
	for _, c := range caps {
		byName[c.Name()] = c
	}
	return &Registry{caps: caps, byName: byName}
}

func (r *Registry) List() []Capability {
	return r.caps
}

// Invoke runs the named capability. The second return is false for
// names the registry does not know.
func (r *Registry) Invoke(ctx context.Context, name string) (Outcome, bool) {
	c, ok := r.byName[name]
	if !ok {
		return Outcome{}, false
	}
	return c.Invoke(ctx), true
}

// Tools renders the registry as function descriptors for the reasoning
// service. Capabilities take no parameters: the active table is implicit.
func (r *Registry) Tools() []llm.Tool {
	tools := make([]llm.Tool, 0, len(r.caps))
	for _, c := range r.caps {
		tools = append(tools, llm.Tool{
			Type: "function",
			Function: llm.Function{
				Name:        c.Name(),
				Description: c.Description(),
				Parameters: map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
					"required":   []string{},
				},
			},
		})
	}
	return tools
}
