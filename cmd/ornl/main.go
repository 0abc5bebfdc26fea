package main

import (
	"context"
	"fmt"
	"os"

	"github.com/katiamach/ornl/internal/api"
	"github.com/katiamach/ornl/internal/config"
	"github.com/katiamach/ornl/internal/logger"
	"github.com/katiamach/ornl/internal/service"
	"github.com/katiamach/ornl/internal/transport/cli/handler"
)

func main() {
	path, err := config.DefaultPath()
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to locate config file: %w", err))
	}

	store := config.New(path)
	weatherService := service.New(api.NewClient(nil), store)
	cli := handler.NewWeatherCLI(weatherService, store, os.Stdout, os.Stderr)

	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
