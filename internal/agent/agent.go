package agent

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"datachat/internal/charts"
	"datachat/internal/dataset"
	"datachat/internal/history"
	"datachat/internal/llm"
)

// MaxDecisionSteps bounds the orchestration loop. Hitting the ceiling is
// a forced termination, not an error: whatever partial answer exists is
// returned.
const MaxDecisionSteps = 5

const systemPrompt = `You are a data analysis assistant. You analyze a single loaded tabular dataset and create visualizations on request.

Chart types and when to use them:
- Bar charts: for comparing categories (e.g. "revenue by month", "expenses by department")
- Line charts: for trends over time (e.g. "profit growth")
- Pie charts: for distribution/percentages (e.g. "expense breakdown")
- Heatmaps: for correlation analysis between numeric variables
- Data info: to inspect columns, shapes and missing values

When a tool reports that the data has no suitable columns or that no data is loaded, relay that to the user plainly. If you generate a chart, explain what it shows.`

// Agent runs the bounded tool-calling loop between conversation state,
// the capability registry, and the reasoning service.
type Agent struct {
	client   llm.Client
	registry *charts.Registry
	memory   *history.Memory
	holder   *dataset.Holder
}

// Result carries the final answer and the artifacts produced while the
// loop ran. Artifacts are collected from capability outcomes, never by
// scanning the output directory.
type Result struct {
	Answer string
	Charts []string
}

func New(client llm.Client, registry *charts.Registry, memory *history.Memory, holder *dataset.Holder) *Agent {
	return &Agent{
		client:   client,
		registry: registry,
		memory:   memory,
		holder:   holder,
	}
}

// Chat processes one user message. On success exactly two turns (user,
// assistant) are appended to memory.
func (a *Agent) Chat(ctx context.Context, userMessage string) (Result, error) {
	msgs := []llm.Message{{Role: "system", Content: a.framing()}}
	for _, t := range a.memory.All() {
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	msgs = append(msgs, llm.Message{Role: "user", Content: userMessage})

	var res Result
	tc, hasTools := a.client.(llm.ToolCaller)
	if !hasTools {
		// Provider without function tools: answer directly.
		resp, err := a.client.Generate(ctx, msgs)
		if err != nil {
			return Result{}, fmt.Errorf("reasoning service failed: %w", err)
		}
		res.Answer = normalizeAnswer(resp.Content)
	} else {
		var err error
		res, err = a.runLoop(ctx, tc, msgs)
		if err != nil {
			return Result{}, err
		}
	}

	a.memory.AppendUser(userMessage)
	a.memory.AppendAssistant(res.Answer)
	return res, nil
}

func (a *Agent) runLoop(ctx context.Context, tc llm.ToolCaller, msgs []llm.Message) (Result, error) {
	tools := a.registry.Tools()
	var artifacts []string

	for step := 1; step <= MaxDecisionSteps; step++ {
		resp, err := tc.GenerateWithTools(ctx, msgs, tools)
		if err != nil {
			return Result{}, fmt.Errorf("reasoning service failed: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			return Result{Answer: normalizeAnswer(resp.Content), Charts: artifacts}, nil
		}

		msgs = append(msgs, llm.Message{Role: "assistant", Content: resp.Content, ToolCalls: resp.ToolCalls})
		for _, call := range resp.ToolCalls {
			outcome, known := a.registry.Invoke(ctx, call.Function.Name)
			text := outcome.Text
			if !known {
				text = fmt.Sprintf("Unknown capability: %s", call.Function.Name)
			}
			log.Printf("capability %s (step %d/%d): %s", call.Function.Name, step, MaxDecisionSteps, firstLine(text))
			if outcome.Artifact != "" {
				artifacts = append(artifacts, filepath.Base(outcome.Artifact))
			}
			msgs = append(msgs, llm.Message{
				Role:       "tool",
				Name:       call.Function.Name,
				ToolCallID: call.ID,
				Content:    text,
			})
		}
	}

	// Forced termination: return the most recent partial content.
	return Result{Answer: forcedAnswer(msgs), Charts: artifacts}, nil
}

// framing is the system prompt plus, when available, the data summary.
// The capability descriptors themselves travel as tool definitions.
func (a *Agent) framing() string {
	summary, err := a.holder.Summary()
	if err != nil {
		return systemPrompt + "\n\nNo dataset is currently loaded."
	}
	return systemPrompt + "\n\nCurrently loaded dataset:\n" + summary.String()
}

// forcedAnswer salvages the last textual content from the scratch
// context when the step ceiling was hit.
func forcedAnswer(msgs []llm.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "system" || msgs[i].Content == "" {
			continue
		}
		return msgs[i].Content
	}
	return "Reached the decision step limit before a final answer was produced."
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
