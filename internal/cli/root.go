package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcoot/jogador/internal/config"
	"github.com/mcoot/jogador/internal/ffi"
	"github.com/mcoot/jogador/internal/logging"
)

// app is the state shared by every command of one invocation
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
	loader     ffi.Loader
}

func (a *app) openAdapter() (*ffi.Adapter, error) {
	return ffi.Open(ffi.Config{
		LibraryPath: a.cfg.LibraryPath,
		Encoding:    a.cfg.FFIEncoding(),
		Loader:      a.loader,
		Logger:      a.logger,
	})
}

func (a *app) output(cmd *cobra.Command) *Output {
	return NewOutput(a.outputFormat(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func (a *app) outputFormat() string {
	if a.cfg == nil {
		return config.OutputText
	}
	return a.cfg.Output
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd(ffi.NewNativeLoader())
	return cmd
}

func newRootCmd(loader ffi.Loader) (*cobra.Command, *app) {
	a := &app{
		v:      config.NewViper(),
		loader: loader,
	}
	defaults := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "jogador",
		Short: "Describe players through the libjogador native module",
		Long: `jogador loads a native shared library and calls its exported
descreve_jogador(const char*) function with each player name.

The library is opened and every symbol is bound before any call is made, so a
wrong path or a library without descreve_jogador fails up front.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cmd.ErrOrStderr(), cfg.Level(), cfg.LogFormat)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (env: JOGADOR_CONFIG)")
	flags.String("lib", defaults.LibraryPath, "Native module path (env: JOGADOR_LIBRARY)")
	flags.String("encoding", defaults.Encoding, "Name encoding: utf-8, latin1 (env: JOGADOR_ENCODING)")
	flags.StringP("output", "o", defaults.Output, "Output format: text, json")
	flags.String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error")
	flags.String("log-format", defaults.LogFormat, "Log format: auto, text, json")
	flags.BoolP("verbose", "v", defaults.Verbose, "Verbose output")

	_ = a.v.BindPFlag(config.KeyLibrary, flags.Lookup("lib"))
	_ = a.v.BindPFlag(config.KeyEncoding, flags.Lookup("encoding"))
	_ = a.v.BindPFlag(config.KeyOutput, flags.Lookup("output"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = a.v.BindPFlag(config.KeyVerbose, flags.Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(newDescribeCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newEncodeCmd(a))

	return rootCmd, a
}

// Run executes the CLI with args and returns the process exit code. Errors
// are written to stderr in the configured output format.
func Run(args []string, stdout, stderr io.Writer, loader ffi.Loader) int {
	cmd, a := newRootCmd(loader)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		NewOutput(a.outputFormat(), stdout, stderr).PrintError(err)
		return ExitCode(err)
	}
	return ExitOK
}

// Execute runs the root command
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr, ffi.NewNativeLoader()))
}
