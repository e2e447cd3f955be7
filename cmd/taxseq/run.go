package main

import (
	"fmt"
	"os"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/altinukshini/taxseq/internal/config"
	"github.com/altinukshini/taxseq/internal/entrez"
	"github.com/altinukshini/taxseq/internal/logging"
	"github.com/altinukshini/taxseq/internal/pipeline"
	"github.com/altinukshini/taxseq/internal/prompt"
	"github.com/altinukshini/taxseq/internal/table"
	"github.com/altinukshini/taxseq/internal/ui"
)

type options struct {
	configPath string
	email      string
	apiKey     string
	taxID      string
	minLen     string
	maxLen     string
	maxRecords int
	batchSize  int
	outDir     string
	retType    string
	baseURL    string
	preview    int
	noInput    bool
	verbose    bool
	jsonLogs   bool
}

func (o *options) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", config.DefaultPath(), "Path to YAML config file")
	f.StringVar(&o.email, "email", "", "Contact email sent to NCBI")
	f.StringVar(&o.apiKey, "api-key", "", "NCBI API key")
	f.StringVar(&o.taxID, "taxid", "", "NCBI taxonomic ID")
	f.StringVar(&o.minLen, "min", "", "Minimum sequence length (inclusive)")
	f.StringVar(&o.maxLen, "max", "", "Maximum sequence length (inclusive)")
	f.IntVar(&o.maxRecords, "max-records", config.DefaultMaxRecords, "Maximum records to fetch")
	f.IntVar(&o.batchSize, "batch-size", config.DefaultBatchSize, "Records per efetch request")
	f.StringVar(&o.outDir, "out-dir", ".", "Directory for the CSV and PNG outputs")
	f.StringVar(&o.retType, "rettype", config.DefaultRetType, "Record format to fetch: gb or fasta")
	f.StringVar(&o.baseURL, "base-url", config.DefaultBaseURL, "E-utilities base URL")
	f.IntVar(&o.preview, "preview", 0, "Print the N longest matched records after writing")
	f.BoolVar(&o.noInput, "no-input", false, "Fail instead of prompting for missing inputs")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
	f.BoolVar(&o.jsonLogs, "log-json", false, "Emit JSON logs on stderr")
}

// resolveConfig layers defaults, the config file, the environment and
// explicitly set flags, in that order.
func (o *options) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()

	f := cmd.Flags()
	if f.Changed("email") {
		cfg.Email = o.email
	}
	if f.Changed("api-key") {
		cfg.APIKey = o.apiKey
	}
	if f.Changed("max-records") {
		cfg.MaxRecords = o.maxRecords
	}
	if f.Changed("batch-size") {
		cfg.BatchSize = o.batchSize
	}
	if f.Changed("out-dir") {
		cfg.OutDir = o.outDir
	}
	if f.Changed("rettype") {
		cfg.RetType = o.retType
	}
	if f.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	return cfg, nil
}

func (o *options) collect(cmd *cobra.Command, cfg config.Config) (prompt.Values, error) {
	v := prompt.Values{
		Email:  cfg.Email,
		APIKey: cfg.APIKey,
		TaxID:  o.taxID,
		MinLen: o.minLen,
		MaxLen: o.maxLen,
	}
	if v.Complete() {
		return v, nil
	}
	if o.noInput {
		return v, fmt.Errorf("missing inputs: --email, --taxid, --min and --max are required with --no-input")
	}

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	stdin, isFile := in.(*os.File)
	if isFile && term.IsTerminal(stdin) && term.FromEnv().IsTerminalOutput() {
		return prompt.Run(v, in, out)
	}
	return prompt.ReadLines(in, out, v)
}

func run(cmd *cobra.Command, o *options) error {
	logger, err := logging.New(o.verbose, o.jsonLogs)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}
	values, err := o.collect(cmd, cfg)
	if err != nil {
		return err
	}
	if err := values.Apply(&cfg); err != nil {
		return err
	}
	logger.Debug("run configured",
		zap.String("taxid", cfg.TaxID),
		zap.Int("min_len", cfg.MinLen),
		zap.Int("max_len", cfg.MaxLen),
		zap.Int("max_records", cfg.MaxRecords),
		zap.String("rettype", cfg.RetType),
		zap.Bool("api_key", cfg.APIKey != ""))

	opts := entrez.OptionsFromConfig(cfg)
	opts.Logger = logger
	client, err := entrez.NewClient(opts)
	if err != nil {
		return err
	}

	console := ui.NewConsole(cmd.OutOrStdout())
	outcome, err := pipeline.Run(cmd.Context(), cfg, client, console)
	if err != nil {
		return err
	}
	logger.Debug("run finished", zap.Stringer("status", outcome.Status), zap.Int("fetched", outcome.Fetched))

	if o.preview > 0 && outcome.Status == pipeline.StatusWritten {
		t := term.FromEnv()
		width, _, err := t.Size()
		if err != nil || width <= 0 {
			width = 120
		}
		return table.Print(cmd.OutOrStdout(), outcome.Table, t.IsTerminalOutput(), width, o.preview)
	}
	return nil
}
