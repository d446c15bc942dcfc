package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/rateio-app/rateio/constants"
	"github.com/rateio-app/rateio/internal/classify"
	"github.com/rateio-app/rateio/internal/llm/gemini"
)

// extract runs the vision extraction over one spreadsheet image and prints
// the classified record as JSON.
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: extract <image-path>")
		os.Exit(2)
	}
	path := os.Args[1]

	mimeType := constants.MimeTypeForExt(filepath.Ext(path))
	if mimeType == "" {
		logger.Error("unsupported image format", "path", path)
		os.Exit(2)
	}
	if os.Getenv("GEMINI_API_KEY") == "" {
		logger.Error("GEMINI_API_KEY env var is required")
		os.Exit(2)
	}

	image, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read image", "path", path, "error", err)
		os.Exit(1)
	}
	if len(image) > constants.MaxUploadBytes {
		logger.Error("image too large", "path", path, "bytes", len(image))
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := gemini.NewClient(gemini.Config{}, logger)
	rec, _, err := client.ExtractSettlement(ctx, image, mimeType)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	rec = classify.New(classify.DefaultConfig()).Classify(rec)

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Error("encode record", "error", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}
