package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"StockDashboard/internal/input"
	"StockDashboard/internal/model"
	"StockDashboard/internal/terminal"
	"StockDashboard/internal/web"

	surveyterm "github.com/AlecAivazis/survey/v2/terminal"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "v1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] load .env: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Stock Market Dashboard",
		Long: `Fetches historical prices for a ticker and shows a close price chart,
latest price, change and volume, and the most recent rows.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfgPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Configuration file path (default $CONFIG_PATH or configs/config.yaml)")

	rootCmd.AddCommand(newServeCmd(&cfgPath))
	rootCmd.AddCommand(newShowCmd(&cfgPath))
	rootCmd.AddCommand(newPromptCmd(&cfgPath))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*cfgPath)
		},
	}
}

func newShowCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [SYMBOL]",
		Short: "Print the dashboard for one symbol",
		Long: `Print the dashboard for one symbol to the terminal.
Example: dashboard show MSFT --period=5d --interval=15m`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			var symbol string
			if len(args) == 1 {
				symbol = args[0]
			}
			period, _ := cmd.Flags().GetString("period")
			interval, _ := cmd.Flags().GetString("interval")

			page := a.dash.Run(cmd.Context(), symbol, period, interval)
			return terminal.Render(cmd.OutOrStdout(), page.View)
		},
	}
	cmd.Flags().String("period", "", "Time period: "+joinPeriods())
	cmd.Flags().String("interval", "", "Bar interval: "+joinIntervals())
	return cmd
}

func newPromptCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Ask for symbol, period and interval interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()
			return runPrompt(cmd.Context(), a, cmd)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "StockDashboard %s\n", version)
		},
	}
}

func runServe(cfgPath string) error {
	log.Println("[INFO] StockDashboard starting...")
	a, err := newApp(cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := web.NewServer(a.cfg.Server.Addr, a.dash)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log.Println("[INFO] StockDashboard is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-sigCh:
	}

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
	log.Println("[INFO] StockDashboard stopped")
	return nil
}

func runPrompt(ctx context.Context, a *app, cmd *cobra.Command) error {
	p := input.Prompter{Collector: a.dash.Input}
	q := a.dash.Input.Collect("", "", "")
	for {
		next, err := p.Ask(q)
		if errors.Is(err, surveyterm.InterruptErr) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		q = next

		if err := terminal.Render(cmd.OutOrStdout(), a.dash.RunQuery(ctx, q)); err != nil {
			return err
		}

		again, err := p.Again()
		if err != nil || !again {
			return nil
		}
	}
}

func joinPeriods() string { return join(model.Periods) }

func joinIntervals() string { return join(model.Intervals) }

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
