package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/fboinator/internal/annotate"
	"github.com/san-kum/fboinator/internal/chart"
	"github.com/san-kum/fboinator/internal/config"
	"github.com/san-kum/fboinator/internal/export"
	"github.com/san-kum/fboinator/internal/series"
	"github.com/san-kum/fboinator/internal/session"
	"github.com/san-kum/fboinator/internal/tui"
)

const logFileName = "fboinator.log"

var (
	baseRate        float64
	growthRate      float64
	maxIndex        int
	modelName       string
	annotationsFile string
	annotateOn      bool
	hidden          []string
	outDir          string
	configFile      string
	preset          string
	logLevel        string
	// subcommand flags
	fromCSV     string
	plotHeight  int
	plotWidth   int
	forceConfig bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "fboinator",
		Short:        "probability series calculator and chart exporter",
		SilenceUsage: true,
		RunE:         runTUI,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd, os.Stderr)
	}

	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&baseRate, "base", series.DefaultBaseRate, "base rate in percent")
	pf.Float64Var(&growthRate, "growth", series.DefaultGrowthRate, "growth per step in percent")
	pf.IntVar(&maxIndex, "max", series.DefaultMaxIndex, "largest index n")
	pf.StringVar(&modelName, "model", series.Multiplicative.String(), "growth model: multiplicative or odds")
	pf.StringVar(&annotationsFile, "annotations", "", "annotation file, one index,label per line")
	pf.BoolVar(&annotateOn, "annotate", false, "draw annotations")
	pf.StringSliceVar(&hidden, "hide", nil, "series to hide: this, any, expected")
	pf.StringVar(&outDir, "out", config.DefaultOutputDir, "output directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive chart",
		RunE:  runTUI,
	}

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "print the series as a table",
		RunE:  printTable,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot the series in the terminal",
		RunE:  plotSeries,
	}
	plotCmd.Flags().StringVar(&fromCSV, "from", "", "plot rows from an exported csv instead")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	exportCmd := &cobra.Command{
		Use:       "export [svg|png|csv|all]",
		Short:     "write chart and data files",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"svg", "png", "csv", "all"},
		RunE:      exportFiles,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBASE\tGROWTH\tMAX\tMODEL")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", name,
					session.FormatBase(p.BaseRate), session.FormatGrowth(p.GrowthRate), p.MaxIndex, p.Model)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&forceConfig, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, tableCmd, plotCmd, exportCmd, presetsCmd, configCmd)
	return rootCmd
}

func setupLogging(cmd *cobra.Command, w io.Writer) error {
	level := logLevel
	if !cmd.Flags().Changed("log-level") && configFile != "" {
		if cfg, err := config.Load(configFile); err == nil && cfg.LogLevel != "" {
			level = cfg.LogLevel
		}
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}

// resolveConfig layers the effective configuration: defaults, then the
// preset, then the config file, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("base") {
		cfg.BaseRate = baseRate
	}
	if flags.Changed("growth") {
		cfg.GrowthRate = growthRate
	}
	if flags.Changed("max") {
		cfg.MaxIndex = maxIndex
	}
	if flags.Changed("model") {
		cfg.Model = modelName
	}
	if flags.Changed("hide") {
		cfg.Hidden = hidden
	}
	if flags.Changed("out") {
		cfg.OutputDir = outDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("annotate") {
		cfg.Annotations.Enabled = annotateOn
	}
	if annotationsFile != "" {
		data, err := os.ReadFile(annotationsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read annotations: %w", err)
		}
		cfg.Annotations.Items = annotate.Parse(string(data))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"base":   cfg.BaseRate,
		"growth": cfg.GrowthRate,
		"max":    cfg.MaxIndex,
		"model":  cfg.Model,
	}).Debug("configuration resolved")
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	// The alternate screen owns the terminal, so logs go to a file.
	f, err := os.OpenFile(filepath.Join(cfg.OutputDir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	log.SetOutput(f)

	log.Info("interactive session started")
	return tui.Run(session.New(cfg), export.NewDownloader(cfg.OutputDir))
}

func printTable(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	rows := series.Generate(cfg.Params())
	return writeTable(cmd.OutOrStdout(), rows)
}

func writeTable(out io.Writer, rows []series.Row) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "N\tTHIS %\tANY %\tEXPECTED %\t")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t\n", r.N, r.PerStep, r.Cumulative, r.Average)
	}
	return w.Flush()
}

var plotColors = [chart.NumSeries]asciigraph.AnsiColor{asciigraph.DodgerBlue, asciigraph.LimeGreen, asciigraph.Tomato}

func plotSeries(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var rows []series.Row
	caption := fmt.Sprintf("%s, base %s%%, growth %s%%",
		cfg.Model, session.FormatBase(cfg.BaseRate), session.FormatGrowth(cfg.GrowthRate))
	if fromCSV != "" {
		f, err := os.Open(fromCSV)
		if err != nil {
			return err
		}
		defer f.Close()
		if rows, err = export.ReadCSV(f); err != nil {
			return fmt.Errorf("%s: %w", fromCSV, err)
		}
		caption = filepath.Base(fromCSV)
	} else {
		rows = series.Generate(cfg.Params())
	}

	graph, err := renderPlot(rows, cfg.Visibility(), caption)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func renderPlot(rows []series.Row, vis chart.Visibility, caption string) (string, error) {
	if len(rows) == 0 {
		return "", export.ErrNoData
	}
	var (
		data    [][]float64
		colors  []asciigraph.AnsiColor
		legends []string
	)
	for i, st := range chart.Series {
		if !vis[i] {
			continue
		}
		values := make([]float64, len(rows))
		for j, r := range rows {
			values[j] = r.Value(i)
		}
		data = append(data, values)
		colors = append(colors, plotColors[i])
		legends = append(legends, st.Label)
	}
	if len(data) == 0 {
		return "", errors.New("every series is hidden")
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	), nil
}

func exportFiles(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	kind := "all"
	if len(args) == 1 {
		kind = strings.ToLower(args[0])
	}

	s := session.New(cfg)
	if !s.CanExport() {
		return export.ErrNoData
	}
	d := export.NewDownloader(cfg.OutputDir)
	steps := map[string]func(*export.Downloader) (string, error){
		"svg": s.ExportSVG,
		"png": s.ExportPNG,
		"csv": s.ExportCSV,
	}
	order := []string{"svg", "png", "csv"}
	if kind != "all" {
		order = []string{kind}
	}

	var errs []error
	for _, k := range order {
		path, err := steps[k](d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return errors.Join(errs...)
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	path := "fboinator.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !forceConfig {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
