package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/distill/internal/logger"
	"github.com/jmylchreest/distill/internal/output"
	"github.com/jmylchreest/distill/pkg/content"
	"github.com/jmylchreest/distill/pkg/distill"
	"github.com/jmylchreest/distill/pkg/metadata"
	"github.com/jmylchreest/distill/pkg/processor"
	"github.com/jmylchreest/distill/pkg/processor/builtin"
	"github.com/jmylchreest/distill/pkg/rules"
)

// Cleaning engines selectable with --engine.
const (
	engineRules = "rules"
	engineChain = "chain"
)

// errFailedItems is returned when at least one input could not be processed.
var errFailedItems = errors.New("some inputs failed")

var processCmd = &cobra.Command{
	Use:   "process [file...]",
	Short: "Clean markup and extract text and metadata",
	Long: `Process article markup from files (or stdin when no file or "-" is given).

Each input produces one result envelope with the cleaned content, the
extracted text and the derived metadata, or the reason it failed.

The default rule engine strips scripts and styles, optionally appends link
targets, flattens markup to text and optionally truncates it. With
--pipeline (or --engine chain) content goes through the configured stages
instead; see "distill stages" for their names.

Pipeline files map stage names to their options, in execution order:

  pipeline:
    codeBlock:
      removeCode: true
    formula:
    htmlCleaner:
    characterConverter:
      normalizeQuotes: false
    whitespace:`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	flags := processCmd.Flags()

	// Cleaning
	flags.String("engine", engineRules, "cleaning engine: rules, chain")
	flags.StringP("pipeline", "p", "", "pipeline YAML file (implies --engine chain)")

	// Processing options
	flags.Bool("remove-images", false, "remove <img> elements")
	flags.Bool("extract-links", false, "append each link target after its anchor text")
	flags.Bool("detect-language", false, "detect the text language instead of reporting the default")
	flags.Bool("extract-topics", false, "request topic extraction")
	flags.Int("max-length", 0, "truncate the cleaned text to this many characters (0=unlimited)")

	// Input and output
	flags.String("max-size", "10MB", "max input size per file (e.g., 512KB, 10MB)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("format", "f", "json", "output format: json, jsonl, yaml, text")
	flags.BoolP("verbose", "v", false, "add a summary line per result to text output")
	flags.IntP("concurrency", "c", 0, "inputs processed at once (default: GOMAXPROCS)")

	for key, name := range map[string]string{
		"engine":          "engine",
		"pipeline":        "pipeline",
		"remove_images":   "remove-images",
		"extract_links":   "extract-links",
		"detect_language": "detect-language",
		"extract_topics":  "extract-topics",
		"max_length":      "max-length",
		"max_size":        "max-size",
		"format":          "format",
		"concurrency":     "concurrency",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := content.ProcessingOptions{
		RemoveImages:   viper.GetBool("remove_images"),
		ExtractLinks:   viper.GetBool("extract_links"),
		DetectLanguage: viper.GetBool("detect_language"),
		ExtractTopics:  viper.GetBool("extract_topics"),
		MaxLength:      viper.GetInt("max_length"),
	}
	if err := opts.Validate(); err != nil {
		logger.Error("invalid options", "error", err)
		return err
	}

	maxSize, err := humanize.ParseBytes(viper.GetString("max_size"))
	if err != nil {
		logger.Error("invalid max-size", "value", viper.GetString("max_size"), "error", err)
		return err
	}

	svc, err := buildService(viper.GetString("engine"), viper.GetString("pipeline"), opts, viper.GetInt("concurrency"))
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		return err
	}

	items, err := readInputs(cmd.InOrStdin(), args, int64(maxSize), opts)
	if err != nil {
		logger.Error("failed to read input", "error", err)
		return err
	}
	logger.Debug("inputs loaded", "count", len(items))

	// Setup output
	var out io.Writer = cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logger.Error("failed to create output file", "path", outPath, "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	format := viper.GetString("format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	writer, err := output.NewWriter(out, output.Format(format), output.WithVerbose(verbose))
	if err != nil {
		logger.Error("failed to create output writer", "format", format, "error", err)
		return err
	}

	start := time.Now()
	results := svc.ProcessBatch(ctx, items)

	if err := writer.WriteAll(results); err != nil {
		logger.Error("failed to write output", "error", err)
		return err
	}
	if err := writer.Close(); err != nil {
		logger.Error("failed to write output", "error", err)
		return err
	}

	var inputBytes, textBytes uint64
	failed := 0
	for i, r := range results {
		inputBytes += uint64(len(items[i].Content))
		if !r.Success {
			failed++
			logError("%s: %s", displayName(items[i].ID), r.Error)
			continue
		}
		textBytes += uint64(len(r.Content.ExtractedText))
	}

	logger.Info("processing complete",
		"inputs", len(items),
		"failed", failed,
		"read", humanize.Bytes(inputBytes),
		"extracted", humanize.Bytes(textBytes),
		"duration", time.Since(start).Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFailedItems, failed, len(items))
	}
	return nil
}

// buildService wires the selected cleaning engine into a distill.Service.
func buildService(engine, pipelinePath string, opts content.ProcessingOptions, concurrency int) (*distill.Service, error) {
	svcOpts := []distill.Option{distill.WithConcurrency(concurrency)}
	if opts.DetectLanguage {
		svcOpts = append(svcOpts, distill.WithExtractor(metadata.New(metadata.WithDetector(metadata.NewLinguaDetector()))))
	} else {
		svcOpts = append(svcOpts, distill.WithExtractor(metadata.New(metadata.WithDetector(nil))))
	}

	if pipelinePath != "" {
		engine = engineChain
	}

	switch engine {
	case engineRules, "":
		svcOpts = append(svcOpts, distill.WithRuleEngine(rules.NewDefaultEngine()))
	case engineChain:
		cfg := builtin.DefaultPipeline()
		if pipelinePath != "" {
			loaded, err := processor.LoadPipelineConfig(pipelinePath)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
		chain, err := builtin.NewRegistry().Build(cfg)
		if err != nil {
			return nil, err
		}
		logger.Debug("using stage chain", "chain", chain.Name())
		svcOpts = append(svcOpts, distill.WithChain(chain))
	default:
		return nil, fmt.Errorf("unknown engine: %s (use %q or %q)", engine, engineRules, engineChain)
	}

	return distill.New(svcOpts...), nil
}

// readInputs loads every named file, or stdin when none (or "-") is named.
// Files are identified by path; stdin gets a generated id.
func readInputs(stdin io.Reader, paths []string, maxSize int64, opts content.ProcessingOptions) ([]distill.Item, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	items := make([]distill.Item, 0, len(paths))
	for _, path := range paths {
		var (
			data []byte
			err  error
			id   string
		)
		if path == "-" {
			data, err = readLimited(stdin, maxSize)
		} else {
			id = path
			data, err = readFile(path, maxSize)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", displayName(id), err)
		}
		items = append(items, distill.Item{ID: id, Content: string(data), Options: opts})
	}
	return items, nil
}

func readFile(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path) //#nosec G304 -- CLI tool reads user-specified input files
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readLimited(f, maxSize)
}

func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("input exceeds %s", humanize.Bytes(uint64(maxSize)))
	}
	return data, nil
}

func displayName(id string) string {
	if strings.TrimSpace(id) == "" {
		return "stdin"
	}
	return id
}
