package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ylchen07/vault-import/internal/backend"
	"github.com/ylchen07/vault-import/internal/config"
	"github.com/ylchen07/vault-import/internal/docker"
	vierrors "github.com/ylchen07/vault-import/internal/errors"
	"github.com/ylchen07/vault-import/internal/hashicorp"
	"github.com/ylchen07/vault-import/internal/importer"
	"github.com/ylchen07/vault-import/internal/logging"
	"github.com/ylchen07/vault-import/internal/metrics"
	"github.com/ylchen07/vault-import/internal/output"
	"github.com/ylchen07/vault-import/internal/secure"
	"github.com/ylchen07/vault-import/pkg/models"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// errReported marks failures that were already printed through the run logger
var errReported = errors.New("run failed")

func init() {
	// Register backends
	backend.Register("docker", "vault CLI inside the Vault container via docker exec", docker.NewStore)
	backend.Register("api", "Vault HTTP API (VAULT_ADDR must be reachable from the host)", hashicorp.NewStore)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := 0
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			logging.New(false, false).Error("%v", err)
		}
		code = 1
	}

	stop()
	secure.Purge()
	os.Exit(code)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vault-import",
		Short: "Import secrets from a rendered env file into Vault KV v2",
		Long: `vault-import reads a rendered env file, keeps the keys whose names contain
SECRET, PASSWORD or API_KEY, and patches them into a Vault KV v2 path.
Re-running is safe: existing keys are overwritten, other keys at the path are kept.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine working directory: %w", err)
			}

			env := config.EnvironmentFromOS()
			cfg, err := config.Load(cmd.Flags(), env, wd)
			if err != nil {
				return vierrors.Wrap(vierrors.KindConfig, err, "%v", err)
			}

			log := logging.New(cfg.Debug, cfg.NoColor)
			runtime := docker.NewClient(cfg.Timeout)

			if err := runImport(cmd.Context(), cfg, env, runtime, cmd.OutOrStdout(), log); err != nil {
				log.Error("%v", err)
				return errReported
			}
			return nil
		},
	}

	config.RegisterFlags(rootCmd.Flags())

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(backendsCmd())

	return rootCmd
}

// runImport executes one run and writes its report to stdout
func runImport(ctx context.Context, cfg config.RunConfig, env config.Environment, runtime backend.Runtime, stdout io.Writer, log *logging.Logger) error {
	if !backend.IsRegistered(cfg.Backend) {
		return vierrors.New(vierrors.KindConfig, "unknown backend: %s", cfg.Backend).
			WithSuggestion("vault-import backends")
	}

	formatter, err := output.GetFormatter(output.Format(cfg.Format))
	if err != nil {
		return vierrors.Wrap(vierrors.KindConfig, err, "%v", err)
	}

	opts := []importer.Option{importer.WithLogger(log)}
	var recorder *metrics.Recorder
	if cfg.MetricsEnabled() {
		recorder = metrics.NewRecorder()
		opts = append(opts, importer.WithMetrics(recorder))
	}

	newStore := func(bc *backend.Config) (backend.Store, error) {
		return backend.New(cfg.Backend, bc)
	}

	report, runErr := importer.New(cfg, env, runtime, newStore, opts...).Run(ctx)

	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("%v", err)
		} else {
			log.Debug("metrics written to %s", cfg.MetricsFile)
		}
	}

	if err := printReport(stdout, formatter, report); err != nil {
		return err
	}

	if runErr == nil && report.Status == models.StatusSuccess {
		log.Info("Vault import complete")
	}

	return runErr
}

func printReport(w io.Writer, formatter output.Formatter, report *models.RunReport) error {
	result, err := formatter.FormatReport(report)
	if err != nil {
		return err
	}
	if result == "" {
		return nil
	}
	_, err = fmt.Fprintln(w, result)
	return err
}

// versionCmd returns the version command
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vault-import %s\n", version)
		},
	}
}

// backendsCmd returns the backends command
func backendsCmd() *cobra.Command {
	var formatType string

	cmd := &cobra.Command{
		Use:   "backends",
		Short: "List available store backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetFormatter(output.Format(formatType))
			if err != nil {
				return err
			}

			result, err := formatter.FormatBackends(backend.List())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatType, "format", "f", "plain", "Output format (plain, json, yaml)")
	return cmd
}
