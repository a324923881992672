package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"picsync/backend/internal/config"
	"picsync/backend/internal/eventparser"
	"picsync/backend/internal/ics"
	"picsync/backend/internal/logging"
)

func main() {
	timeoutFlag := flag.Duration("timeout", 30*time.Second, "overall timeout")
	formatFlag := flag.String("format", "json", "output format: json|ics")
	noAIFlag := flag.Bool("no-ai", false, "skip the AI passes even if GEMINI_API_KEY is set")
	flag.Parse()
	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "usage: picsync-parse [-timeout 30s] [-format json|ics] [-no-ai] [file]")
		os.Exit(2)
	}
	format := strings.ToLower(strings.TrimSpace(*formatFlag))
	if format != "json" && format != "ics" {
		fmt.Fprintf(os.Stderr, "invalid format: %s\n", *formatFlag)
		os.Exit(2)
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "no text to parse")
		os.Exit(1)
	}

	logger, cleanup, err := logging.New(config.LoggingConfig{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	}, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = cleanup()
	}()
	slog.SetDefault(logger)

	ai := config.LoadAI()
	opts := eventparser.Options{AITimeout: ai.Timeout, Concurrent: ai.Concurrent}
	if !*noAIFlag {
		opts.Completer = eventparser.NewCompleter(ai, logger)
	}
	pipeline := eventparser.NewPipeline(opts, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()
	result := pipeline.BuildEvent(ctx, text)

	if format == "ics" {
		body, err := ics.Render(result, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "ics error: %v\n", err)
			os.Exit(1)
		}
		_, _ = os.Stdout.Write(body)
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
