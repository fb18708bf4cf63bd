package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/prismabundle/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `prismabundle - embeds the Prisma schema and query engines into packaged
serverless function archives.

Run it after the bundler has written .serverless/<function>.zip. Every
selected Node.js function archive receives schema.prisma and the Prisma
engine binaries next to its handler.

Arguments:
  SERVICE_PATH
    Directory holding serverless.yml (or .yaml, .json, .hcl). Defaults to
    the current directory.`

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		config     *app.Config
		configFile string
		packageDir string
		logFormat  string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "prismabundle [flags] [SERVICE_PATH]",
		Short:         "Embed Prisma artifacts into serverless function archives.",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			slog.Debug("Service path determined.", "path", path)

			format := strings.ToLower(logFormat)
			if format != "text" && format != "json" {
				return errors.New("invalid log-format: must be 'text' or 'json'")
			}

			level := strings.ToLower(logLevel)
			switch level {
			case "debug", "info", "warn", "error":
				// valid
			default:
				return errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
			}
			slog.Debug("CLI parameter validation complete.")

			cfg, err := app.NewConfig(app.Config{
				ServicePath: path,
				ConfigFile:  configFile,
				PackageDir:  packageDir,
				LogFormat:   format,
				LogLevel:    level,
			})
			if err != nil {
				return err
			}
			config = cfg
			return nil
		},
	}
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "Service definition file, relative to SERVICE_PATH. Discovered when empty.")
	flags.StringVarP(&packageDir, "package", "p", "", "Directory holding the packaged archives. Defaults to <outputDir>/.serverless.")
	flags.StringVar(&logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	// Help was requested; cobra already printed it.
	if config == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
