package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/awmpietro/hr-workflow-sandbox/internal/app"
	"github.com/awmpietro/hr-workflow-sandbox/internal/config"
	"github.com/awmpietro/hr-workflow-sandbox/internal/logging"
	"github.com/awmpietro/hr-workflow-sandbox/internal/transport/lambdatransport"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, "json", os.Stdout)

	svc, closeSvc, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("failed to build service", "error", err)
		os.Exit(1)
	}
	defer closeSvc()

	h := lambdatransport.NewHandler(svc, logger)
	lambda.Start(h.Handle)
}
