// Package handler implements the ornl command tree.
package handler

import (
	"context"
	"errors"
	"io"

	"github.com/katiamach/ornl/internal/logger"
	"github.com/katiamach/ornl/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//go:generate mockgen -source=handlers.go -destination=mock/mock.go WeatherService

// WeatherService provides weather data methods.
type WeatherService interface {
	GetWeatherData(ctx context.Context, loc model.Location, opts model.QueryOptions) (model.Response, error)
	PreviewData(ctx context.Context, loc model.Location, opts model.QueryOptions) (model.Response, error)
}

// ConfigStore persists CLI settings.
type ConfigStore interface {
	Set(key string, value any) error
	BaseURL() (string, error)
	Clear() error
}

// UsageError is a soft failure: it is reported but the process exits successfully.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// WeatherCLI is the command-line front end of the weather service.
type WeatherCLI struct {
	service WeatherService
	store   ConfigStore
	out     io.Writer
	errOut  io.Writer
}

// NewWeatherCLI creates new WeatherCLI writing results to out and messages to errOut.
func NewWeatherCLI(service WeatherService, store ConfigStore, out, errOut io.Writer) *WeatherCLI {
	return &WeatherCLI{
		service: service,
		store:   store,
		out:     out,
		errOut:  errOut,
	}
}

// RootCmd builds the command tree.
func (c *WeatherCLI) RootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:     "ornl",
		Short:   "Daymet Weather CLI - Daily surface weather data from your terminal",
		Version: "1.0.0",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log requests and responses to stderr")

	root.SetOut(c.out)
	root.SetErr(c.errOut)

	root.AddCommand(
		c.configCmd(),
		c.getCmd(),
		c.previewCmd(),
		c.varsCmd(),
	)

	return root
}

// Execute runs the command line args and returns the process exit status.
func (c *WeatherCLI) Execute(ctx context.Context, args []string) int {
	root := c.RootCmd()
	// a nil slice would make cobra fall back to os.Args
	root.SetArgs(append([]string{}, withPositionalArgs(args)...))

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		c.printError(usageErr.Message)
		return 0
	}

	logger.Error(err)
	c.printError(err.Error())

	return 1
}
