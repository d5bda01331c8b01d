package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"datachat/internal/agent"
	"datachat/internal/dataset"
)

// Trigger words in a chat message that suggest the user wants a tabular
// answer; when one is present and a table is active, a rendered snapshot
// is attached regardless of what the reasoning service did.
var tableTriggers = []string{"table", "report", "compare", "list", "breakdown"}

// Handler reads one request record, dispatches it, and produces exactly
// one response record. Single-shot and synchronous.
type Handler struct {
	holder   *dataset.Holder
	agent    *agent.Agent
	recorder Recorder // optional
}

func NewHandler(holder *dataset.Holder, ag *agent.Agent, rec Recorder) *Handler {
	return &Handler{holder: holder, agent: ag, recorder: rec}
}

// ProcessFile handles one request record stored at requestPath. A body
// that does not parse still yields an error response, with the sentinel
// id since the real one is unrecoverable.
func (h *Handler) ProcessFile(ctx context.Context, requestPath string) Response {
	raw, err := os.ReadFile(requestPath)
	if err != nil {
		return h.record(Request{}, Failure(UnknownID, "failed to read request file", err))
	}
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return h.record(Request{}, Failure(UnknownID, "malformed request body", err))
	}
	return h.Run(ctx, req)
}

// Run dispatches a parsed request and records the exchange.
func (h *Handler) Run(ctx context.Context, req Request) Response {
	return h.record(req, h.Handle(ctx, req))
}

// Handle dispatches a parsed request. Anything unexpected, including a
// panic below this point, is converted into an error response carrying
// the request id.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = Failure(req.ID, "internal error during dispatch", fmt.Errorf("panic: %v", r))
		}
	}()

	switch req.Type {
	case TypeLoadData:
		return h.handleLoad(req)
	case TypeChat:
		return h.handleChat(ctx, req)
	default:
		return Failure(req.ID, fmt.Sprintf("unknown request type: %q", req.Type), errors.New("unknown request type"))
	}
}

func (h *Handler) handleLoad(req Request) Response {
	if req.FileData == nil || req.FileData.Path == "" {
		return Failure(req.ID, "load_data request requires fileData.path", errors.New("missing fileData"))
	}

	name := req.FileData.Name
	if name == "" {
		name = filepath.Base(req.FileData.Path)
	}
	t, err := h.holder.Load(req.FileData.Path, name)
	if err != nil {
		return Failure(req.ID, fmt.Sprintf("Failed to load data from %s", name), err)
	}

	resp := Success(req.ID, fmt.Sprintf(
		"Data loaded successfully from %s (%d rows, %d columns)", name, t.RowCount(), t.ColCount()))
	resp.TableData = RenderText(t)
	resp.Data = RenderMarkdown(t)
	return resp
}

func (h *Handler) handleChat(ctx context.Context, req Request) Response {
	if req.Message == "" {
		return Failure(req.ID, "chat request requires a message", errors.New("missing message"))
	}
	if h.agent == nil {
		return Failure(req.ID, "agent not initialized", errors.New("agent not initialized"))
	}

	result, err := h.agent.Chat(ctx, req.Message)
	if err != nil {
		return Failure(req.ID, "Error processing request", err)
	}

	resp := Success(req.ID, result.Answer)
	resp.Charts = result.Charts

	if wantsTable(req.Message) {
		if t := h.holder.Table(); t != nil {
			resp.TableData = RenderText(t)
			resp.Data = RenderMarkdown(t)
		}
	}
	return resp
}

func wantsTable(message string) bool {
	lower := strings.ToLower(message)
	for _, w := range tableTriggers {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func (h *Handler) record(req Request, resp Response) Response {
	if h.recorder == nil {
		return resp
	}
	ex := Exchange{
		Timestamp: nowFunc(),
		RequestID: resp.ID,
		Type:      req.Type,
		Status:    resp.Status,
		Message:   resp.Message,
	}
	if err := h.recorder.Append(ex); err != nil {
		log.Printf("failed to record exchange %s: %v", resp.ID, err)
	}
	return resp
}

// WriteResponse persists a response record. The host polls for this file.
func WriteResponse(resp Response, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to ensure response dir: %w", err)
	}
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
