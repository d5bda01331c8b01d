package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"datachat/internal/agent"
	"datachat/internal/bridge"
	"datachat/internal/charts"
	"datachat/internal/config"
	"datachat/internal/dataset"
	"datachat/internal/history"
	"datachat/internal/llm"
)

const usage = "usage: bridge <init|load|chat|summary|history|clear|process> [flags]"

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	file := fs.String("file", "", "file to load from the input dir (load)")
	message := fs.String("message", "", "chat message (chat)")
	apiKey := fs.String("api-key", "", "reasoning service API key override")
	output := fs.String("output", "result.json", "response file name in the output dir")
	request := fs.String("request", "", "request record path (process)")
	response := fs.String("response", "", "response record path (process); defaults to the output dir")
	_ = fs.Parse(os.Args[2:])

	cfg := config.New()
	if *apiKey != "" {
		cfg.OpenAIAPIKey = *apiKey
	}
	if err := bridge.EnsureDirs(cfg.DataDir); err != nil {
		log.Fatalf("failed to provision data dirs: %v", err)
	}

	holder := dataset.NewHolder()
	registry := charts.NewRegistry(holder, cfg.OutputDir())
	memory := history.NewMemory()

	var rec bridge.Recorder
	if fr, err := bridge.NewFileRecorder(cfg.ExchangeLogPath); err != nil {
		log.Printf("failed to init exchange recorder: %v", err)
	} else {
		rec = fr
	}

	// Client construction can fail (missing credential). The handler
	// turns a nil agent into a descriptive error response, not a crash.
	var ag *agent.Agent
	client, clientErr := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if clientErr == nil {
		ag = agent.New(client, registry, memory, holder)
	}

	handler := bridge.NewHandler(holder, ag, rec)
	ctx := context.Background()
	responsePath := filepath.Join(cfg.OutputDir(), *output)

	var resp bridge.Response
	switch command {
	case "init":
		if clientErr != nil {
			resp = bridge.Failure(uuid.NewString(), "Failed to initialize agent", clientErr)
		} else {
			resp = bridge.Success(uuid.NewString(), "Agent initialized successfully")
		}

	case "load":
		if *file == "" {
			resp = bridge.Failure(uuid.NewString(), "File parameter required for load command", errors.New("missing -file"))
			break
		}
		resp = handler.Run(ctx, bridge.Request{
			ID:   uuid.NewString(),
			Type: bridge.TypeLoadData,
			FileData: &bridge.FileData{
				Path: filepath.Join(cfg.InputDir(), *file),
				Name: *file,
			},
		})

	case "chat":
		if *message == "" {
			resp = bridge.Failure(uuid.NewString(), "Message parameter required for chat command", errors.New("missing -message"))
			break
		}
		resp = handler.Run(ctx, bridge.Request{
			ID:      uuid.NewString(),
			Type:    bridge.TypeChat,
			Message: *message,
		})

	case "summary":
		summary, err := holder.Summary()
		if errors.Is(err, dataset.ErrNotLoaded) {
			resp = bridge.Success(uuid.NewString(), "No data loaded")
		} else if err != nil {
			resp = bridge.Failure(uuid.NewString(), "Failed to read data summary", err)
		} else {
			resp = bridge.Success(uuid.NewString(), fmt.Sprintf(
				"Data summary for %s (%d rows, %d columns)", summary.Source, summary.RowsN, summary.ColsN))
			resp.Data = summary.String()
		}

	case "history":
		turns := memory.All()
		data, err := json.MarshalIndent(turns, "", "  ")
		if err != nil {
			resp = bridge.Failure(uuid.NewString(), "Failed to encode history", err)
			break
		}
		resp = bridge.Success(uuid.NewString(), fmt.Sprintf("%d turns in conversation memory", len(turns)))
		resp.Data = string(data)

	case "clear":
		memory.Clear()
		resp = bridge.Success(uuid.NewString(), "Conversation cleared")

	case "process":
		if *request == "" {
			resp = bridge.Failure(bridge.UnknownID, "Request parameter required for process command", errors.New("missing -request"))
			break
		}
		if *response != "" {
			responsePath = *response
		}
		resp = handler.ProcessFile(ctx, *request)

	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := bridge.WriteResponse(resp, responsePath); err != nil {
		log.Printf("failed to write response file: %v", err)
	}
	echo, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode response: %v", err)
	}
	fmt.Println(string(echo))
}
