// Command florin-check sends a single prompt to the configured completion
// endpoint. Handy for verifying connectivity before starting the server.
package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/padraigk/florin/internal/config"
	"github.com/padraigk/florin/internal/llm"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()
	oracle, err := llm.New(cfg.OracleBaseURL, cfg.OracleAPIKey, cfg.OracleModel)
	if err != nil {
		logger.Fatal("failed to initialize completion client", zap.Error(err))
	}

	completion, err := oracle.Generate(context.Background(),
		"Reply with a one-sentence greeting from a business advisor.")
	if err != nil {
		logger.Fatal("failed to generate completion", zap.Error(err))
	}
	fmt.Println(completion)
}
