package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/holiy930561/LenDon"
	"github.com/holiy930561/LenDon/cache"
	"github.com/holiy930561/LenDon/processor"
	"github.com/holiy930561/LenDon/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	scenario    string
	glossary    []string
	keywords    []string
	regenerate  int
	jsonOut     bool
	htmlOut     bool
	cacheFile   string
	noCache     bool
	metricsFile string
	workers     int
}

// variantOutput is one generated wording in --json output.
type variantOutput struct {
	RequestID  string `json:"request_id"`
	Source     string `json:"source,omitempty"`
	Scenario   string `json:"scenario"`
	Phase      string `json:"phase"`
	Result     string `json:"result,omitempty"`
	Characters int    `json:"characters"`
	Limit      int    `json:"limit,omitempty"`
	OverLimit  bool   `json:"over_limit"`
	Error      string `json:"error,omitempty"`
	ElapsedMs  int64  `json:"elapsed_ms,omitempty"`
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [file...]",
		Short: "Generate Vietnamese content from Chinese source text",
		Long: `Generate Vietnamese marketplace content from Chinese source text.

The source is read from the given file, or from stdin when no file is given.
Pasted HTML is reduced to its visible text first. With several files every
file is generated independently and concurrently.

Examples:
  lendon generate --scenario seo --glossary "Baseus,iPhone 15" title.txt
  echo "亲，这款有现货吗？" | lendon generate --scenario cs
  lendon generate --scenario marketing --regenerate 2 --json promo.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "seo", "Scenario: seo, product, cs, marketing (or SEO_TITLE...)")
	cmd.Flags().StringSliceVarP(&opts.glossary, "glossary", "g", nil, "Terms to keep untranslated (comma separated)")
	cmd.Flags().StringSliceVarP(&opts.keywords, "keywords", "k", nil, "Keywords the result must include (comma separated, in order)")
	cmd.Flags().IntVar(&opts.regenerate, "regenerate", 0, "Ask for N additional wordings of the same request")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.htmlOut, "html", false, "Output the rendered result panel as HTML")
	cmd.Flags().StringVar(&opts.cacheFile, "cache-file", "", "Import the result cache from this file before generating and export it after")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Disable the result cache")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after generating")
	cmd.Flags().IntVar(&opts.workers, "workers", lendon.DefaultBatchWorkers, "Concurrent generations when several files are given")

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions, args []string) error {
	scenario, err := lendon.ParseScenario(opts.scenario)
	if err != nil {
		return err
	}
	if opts.regenerate < 0 {
		return fmt.Errorf("--regenerate must not be negative")
	}
	if opts.jsonOut && opts.htmlOut {
		return fmt.Errorf("--json and --html are mutually exclusive")
	}

	opts.glossary = splitAll(opts.glossary)
	opts.keywords = splitAll(opts.keywords)

	sources, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	p, err := buildPipeline(a.cfg, a.logger, opts.noCache)
	if err != nil {
		return err
	}
	defer p.close()

	if opts.cacheFile != "" && p.cache != nil {
		if err := importCache(p.cache, opts.cacheFile, a.logger); err != nil {
			return err
		}
		defer exportCache(p.cache, opts.cacheFile, p.model, a.logger)
	}

	registry := prometheus.NewRegistry()
	metrics := lendon.NewMetrics(registry)
	if opts.metricsFile != "" {
		defer func() {
			if err := prometheus.WriteToTextfile(opts.metricsFile, registry); err != nil {
				a.logger.Warn("writing metrics failed", zap.String("path", opts.metricsFile), zap.Error(err))
			}
		}()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(sources) > 1 {
		return runBatch(ctx, cmd.OutOrStdout(), a, opts, p.generator, scenario, sources)
	}

	session := lendon.NewSession(p.generator,
		lendon.WithLogger(a.logger),
		lendon.WithMetrics(metrics),
		lendon.WithTimeout(a.cfg.Timeout),
		lendon.WithSourceProcessor(processor.NewHTMLProcessor()),
		lendon.WithInitialScenario(scenario),
	)

	if err := session.Submit(ctx, sources[0].text, opts.glossary, opts.keywords); err != nil {
		return err
	}

	var (
		variants []variantOutput
		failed   error
	)
	for i := 0; i <= opts.regenerate; i++ {
		if i > 0 && !session.Regenerate(ctx) {
			break
		}

		start := time.Now()
		state, err := session.Wait(ctx)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		failed = nil
		if state.Phase == lendon.PhaseError {
			failed = state.Err
		}

		if opts.jsonOut {
			variants = append(variants, stateOutput(state, "", elapsed))
			continue
		}
		if err := writeSnapshot(cmd.OutOrStdout(), a, opts, session.Snapshot(), i); err != nil {
			return err
		}
	}

	if opts.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), variants); err != nil {
			return err
		}
	}

	return failed
}

// runBatch generates every source concurrently without a session.
func runBatch(ctx context.Context, w io.Writer, a *app, opts *generateOptions, gen lendon.Generator, scenario lendon.Scenario, sources []source) error {
	reqs, err := batchRequests(processor.NewHTMLProcessor(), scenario, opts, sources)
	if err != nil {
		return err
	}

	items := lendon.GenerateBatch(ctx, gen, reqs, opts.workers)

	var failures int
	var variants []variantOutput
	for i, item := range items {
		if item.Err != nil {
			failures++
			a.logger.Warn("generation failed", zap.String("source", sources[i].name), zap.Error(item.Err))
		}

		state := batchState(item)
		if opts.jsonOut {
			out := stateOutput(state, sources[i].name, 0)
			variants = append(variants, out)
			continue
		}

		fmt.Fprintf(w, "==> %s <==\n", sources[i].name)
		if err := writeSnapshot(w, a, opts, lendon.Snapshot{Scenario: scenario, State: state}, 0); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if opts.jsonOut {
		if err := writeJSON(w, variants); err != nil {
			return err
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d generations failed", failures, len(items))
	}
	return nil
}

// batchRequests captures one request per source, rejecting sources that are
// blank once processed.
func batchRequests(proc lendon.SourceProcessor, scenario lendon.Scenario, opts *generateOptions, sources []source) ([]lendon.GenerationRequest, error) {
	reqs := make([]lendon.GenerationRequest, 0, len(sources))
	for _, src := range sources {
		text, err := proc.Process(src.text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.name, err)
		}
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%s: %w", src.name, &lendon.EmptyInputError{Input: src.text})
		}
		reqs = append(reqs, lendon.NewGenerationRequest(scenario, text, opts.glossary, opts.keywords))
	}
	return reqs, nil
}

func batchState(item lendon.BatchItem) lendon.GenerationState {
	req := item.Request
	if item.Err != nil {
		return lendon.GenerationState{
			Phase:   lendon.PhaseError,
			Request: &req,
			Err:     &lendon.GenerationFailure{Message: "generation failed", Cause: item.Err},
		}
	}
	result := item.Result
	outcome := item.Outcome
	return lendon.GenerationState{
		Phase:   lendon.PhaseReady,
		Request: &req,
		Result:  &result,
		Outcome: &outcome,
	}
}

func stateOutput(state lendon.GenerationState, name string, elapsed time.Duration) variantOutput {
	out := variantOutput{
		Source:    name,
		Phase:     string(state.Phase),
		ElapsedMs: elapsed.Milliseconds(),
	}
	if state.Request != nil {
		out.RequestID = state.Request.ID
		out.Scenario = string(state.Request.Scenario)
	}
	if state.Result != nil {
		out.Result = state.Result.Text
	}
	if state.Outcome != nil {
		out.Characters = state.Outcome.CharacterCount
		out.Limit = state.Outcome.Limit
		out.OverLimit = state.Outcome.IsOverLimit
	}
	if state.Err != nil {
		out.Error = state.Err.Error()
	}
	return out
}

func writeSnapshot(w io.Writer, a *app, opts *generateOptions, snap lendon.Snapshot, variant int) error {
	var (
		out string
		err error
	)
	if opts.htmlOut {
		out, err = render.OutputPanel(a.language, snap)
		out += "\n"
	} else {
		out, err = render.OutputText(a.language, snap)
	}
	if err != nil {
		return err
	}

	if variant > 0 && !opts.htmlOut {
		fmt.Fprintf(w, "\n--- #%d ---\n", variant+1)
	}
	_, err = io.WriteString(w, out)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func importCache(c cache.Enumerable, path string, log *zap.Logger) error {
	result, err := cache.NewImporter(c).ImportFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("importing cache: %w", err)
	}
	log.Debug("cache imported",
		zap.String("path", path),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return nil
}

func exportCache(c cache.Enumerable, path, model string, log *zap.Logger) {
	n, err := cache.NewExporter(c).ExportToFile(path, map[string]string{
		"model":   model,
		"target":  lendon.TargetLocale,
		"version": lendon.FullVersion(),
	})
	if err != nil {
		log.Warn("exporting cache failed", zap.String("path", path), zap.Error(err))
		return
	}
	log.Debug("cache exported", zap.String("path", path), zap.Int("entries", n))
}

// splitAll re-splits flag values on full-width commas as well.
func splitAll(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, lendon.SplitList(v)...)
	}
	return out
}

// source is one input document.
type source struct {
	name string
	text string
}

func readSources(stdin io.Reader, args []string) ([]source, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []source{{name: "stdin", text: string(data)}}, nil
	}

	sources := make([]source, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		sources = append(sources, source{name: path, text: string(data)})
	}
	return sources, nil
}
