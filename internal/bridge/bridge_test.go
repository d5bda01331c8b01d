package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"datachat/internal/agent"
	"datachat/internal/charts"
	"datachat/internal/dataset"
	"datachat/internal/history"
	"datachat/internal/llm"
)

const salesCSV = `Month,Region,Revenue,Cost,Date
Jan,North,1000,400,2024-01-31
Feb,North,1500,550,2024-02-29
Mar,South,900,380,2024-03-31
Apr,South,1200,470,2024-04-30
May,East,800,300,2024-05-31
Jun,West,1700,600,2024-06-30
`

// echoClient requests one capability on the first call, then answers
// with the content of the last tool message so capability text surfaces
// in the final response.
type echoClient struct {
	capability string
	calls      int
}

func (c *echoClient) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	return c.GenerateWithTools(ctx, msgs, nil)
}

func (c *echoClient) GenerateWithTools(_ context.Context, msgs []llm.Message, _ []llm.Tool) (llm.Response, error) {
	c.calls++
	if c.calls == 1 {
		return llm.Response{ToolCalls: []llm.ToolCall{{
			ID:       "call-1",
			Type:     "function",
			Function: llm.FunctionCall{Name: c.capability},
		}}}, nil
	}
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "tool" {
			return llm.Response{Content: msgs[i].Content}, nil
		}
	}
	return llm.Response{Content: "no tool output"}, nil
}

type env struct {
	handler *Handler
	holder  *dataset.Holder
	dir     string
}

func newEnv(t *testing.T, capability string, rec Recorder) *env {
	t.Helper()
	dir := t.TempDir()
	holder := dataset.NewHolder()
	registry := charts.NewRegistry(holder, dir)
	ag := agent.New(&echoClient{capability: capability}, registry, history.NewMemory(), holder)
	return &env{handler: NewHandler(holder, ag, rec), holder: holder, dir: dir}
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestProcessFileMalformedRequest(t *testing.T) {
	e := newEnv(t, "get_data_info", nil)
	path := writeFixture(t, t.TempDir(), "req.json", "{not json")

	resp := e.handler.ProcessFile(context.Background(), path)
	if resp.Status != StatusError || resp.ID != UnknownID {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Error == "" {
		t.Fatalf("error detail missing")
	}
}

func TestProcessFileMissingRequest(t *testing.T) {
	e := newEnv(t, "get_data_info", nil)
	resp := e.handler.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	if resp.Status != StatusError || resp.ID != UnknownID {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLoadDataRequest(t *testing.T) {
	e := newEnv(t, "get_data_info", nil)
	csvPath := writeFixture(t, t.TempDir(), "sales.csv", salesCSV)

	resp := e.handler.Run(context.Background(), Request{
		ID:       "req-1",
		Type:     TypeLoadData,
		FileData: &FileData{Path: csvPath, Name: "sales.csv"},
	})
	if resp.Status != StatusSuccess || resp.ID != "req-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.Contains(resp.Message, "6 rows") || !strings.Contains(resp.Message, "5 columns") {
		t.Fatalf("message does not report the shape: %s", resp.Message)
	}
	if resp.TableData == "" || resp.Data == "" {
		t.Fatalf("load response missing table renders")
	}
	if !strings.Contains(resp.Data, "|") {
		t.Fatalf("data field is not a markdown table:\n%s", resp.Data)
	}
}

func TestLoadDataRequestWithoutFile(t *testing.T) {
	e := newEnv(t, "get_data_info", nil)
	resp := e.handler.Run(context.Background(), Request{ID: "req-2", Type: TypeLoadData})
	if resp.Status != StatusError || resp.ID != "req-2" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestChatProducesChartArtifact(t *testing.T) {
	e := newEnv(t, "generate_bar_chart", nil)
	csvPath := writeFixture(t, t.TempDir(), "sales.csv", salesCSV)
	if _, err := e.holder.Load(csvPath, "sales.csv"); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	resp := e.handler.Run(context.Background(), Request{
		ID:      "req-3",
		Type:    TypeChat,
		Message: "Show revenue by month",
	})
	if resp.Status != StatusSuccess {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Charts) != 1 || !strings.HasPrefix(resp.Charts[0], "bar_chart_") {
		t.Fatalf("unexpected charts: %v", resp.Charts)
	}
	if resp.TableData != "" {
		t.Fatalf("snapshot attached without a trigger word")
	}
}

func TestChatWithoutDataStaysGraceful(t *testing.T) {
	e := newEnv(t, "generate_heatmap", nil)

	resp := e.handler.Run(context.Background(), Request{
		ID:      "req-4",
		Type:    TypeChat,
		Message: "correlations please",
	})
	if resp.Status != StatusSuccess {
		t.Fatalf("missing dataset must not error the request: %+v", resp)
	}
	if !strings.Contains(strings.ToLower(resp.Message), "no data loaded") {
		t.Fatalf("answer does not explain the missing dataset: %s", resp.Message)
	}
	if len(resp.Charts) != 0 {
		t.Fatalf("charts produced without data: %v", resp.Charts)
	}
}

func TestChatTriggerWordAttachesSnapshot(t *testing.T) {
	e := newEnv(t, "get_data_info", nil)
	csvPath := writeFixture(t, t.TempDir(), "sales.csv", salesCSV)
	if _, err := e.holder.Load(csvPath, "sales.csv"); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	resp := e.handler.Run(context.Background(), Request{
		ID:      "req-5",
		Type:    TypeChat,
		Message: "Give me a report of the data",
	})
	if resp.Status != StatusSuccess {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.TableData == "" || resp.Data == "" {
		t.Fatalf("trigger word did not attach table renders")
	}
	if !strings.Contains(resp.TableData, "Revenue") {
		t.Fatalf("text render missing header:\n%s", resp.TableData)
	}
}

func TestChatWithoutMessage(t *testing.T) {
	e := newEnv(t, "get_data_info", nil)
	resp := e.handler.Run(context.Background(), Request{ID: "req-6", Type: TypeChat})
	if resp.Status != StatusError {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestChatWithoutAgent(t *testing.T) {
	h := NewHandler(dataset.NewHolder(), nil, nil)
	resp := h.Run(context.Background(), Request{ID: "req-7", Type: TypeChat, Message: "hello"})
	if resp.Status != StatusError || !strings.Contains(resp.Message, "agent not initialized") {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUnknownRequestType(t *testing.T) {
	e := newEnv(t, "get_data_info", nil)
	resp := e.handler.Run(context.Background(), Request{ID: "req-8", Type: "shutdown"})
	if resp.Status != StatusError || resp.ID != "req-8" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.Contains(resp.Message, "shutdown") {
		t.Fatalf("message does not name the rejected type: %s", resp.Message)
	}
}

func TestRecorderAppendsOneLinePerRequest(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log", "exchanges.jsonl")
	rec, err := NewFileRecorder(logPath)
	if err != nil {
		t.Fatalf("recorder init failed: %v", err)
	}
	e := newEnv(t, "get_data_info", rec)

	e.handler.Run(context.Background(), Request{ID: "a", Type: "bogus"})
	e.handler.Run(context.Background(), Request{ID: "b", Type: "bogus"})

	f, err := os.Open(logPath)
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}
	defer f.Close()

	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ex Exchange
		if err := json.Unmarshal(sc.Bytes(), &ex); err != nil {
			t.Fatalf("line %d is not valid json: %v", lines+1, err)
		}
		if ex.Status != StatusError {
			t.Fatalf("unexpected status in line %d: %s", lines+1, ex.Status)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("exchange lines = %d, want 2", lines)
	}
}

func TestWriteResponseRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.json")
	want := Success("req-9", "done")
	want.Charts = []string{"bar_chart_20240101_120000.png"}

	if err := WriteResponse(want, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	var got Response
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("response file is not valid json: %v", err)
	}
	if got.ID != want.ID || got.Status != want.Status || len(got.Charts) != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRenderTextTruncatesLongTables(t *testing.T) {
	var b strings.Builder
	b.WriteString("N\n")
	for i := 0; i < 60; i++ {
		b.WriteString("1\n")
	}
	tab, err := dataset.Load(writeFixture(t, t.TempDir(), "long.csv", b.String()), "long.csv")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	text := RenderText(tab)
	if !strings.Contains(text, "10 more rows") {
		t.Fatalf("truncation notice missing:\n%s", text)
	}
	md := RenderMarkdown(tab)
	if !strings.Contains(md, "10 more rows") {
		t.Fatalf("markdown truncation notice missing:\n%s", md)
	}
}
