package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogotex/gogotex/backend/go-simplifier/internal/app"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/config"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification/service"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	inputFile string
	store     bool
)

var rootCmd = &cobra.Command{
	Use:   "simplify [text]",
	Short: "Simplify a document with the configured model",
	Long: `Runs one document through the same model runtime the HTTP service uses and
prints the simplified text to stdout.

Input is taken from the argument, from --file, or from stdin. Model and storage
settings come from the environment (MODEL_URL, MODEL_NAME, MONGODB_URI, ...).`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&inputFile, "file", "f", "", "read the document from a file")
	rootCmd.Flags().BoolVar(&store, "store", false, "persist the pair to the configured stores")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger.SetOutput(cmd.ErrOrStderr())
	logger.Init(os.Getenv("LOG_LEVEL"))

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("no document text provided")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if !store {
		cfg.MongoDB.URI = ""
		cfg.MinIO.Endpoint = ""
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	deps, err := app.Wire(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close(context.Background())

	out, err := deps.Service().Simplify(service.WithRequestID(ctx, "cli"), text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case inputFile != "":
		b, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", inputFile, err)
		}
		return strings.TrimRight(string(b), "\n"), nil
	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(b), "\n"), nil
	}
}
