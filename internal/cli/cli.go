package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/ripplegrid/pkg/buildinfo"
	"github.com/matzehuels/ripplegrid/pkg/config"
	"github.com/matzehuels/ripplegrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and default file names.
	appName = "ripplegrid"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the grid's passes
// are logged through the pipeline hooks as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerDebugHooks(c.Logger)
		c.Logger.Debug("build", "version", buildinfo.String())
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Ripplegrid reveals a grid of boxes in a ripple",
		Long:          `Ripplegrid lays out a grid of boxes and reveals them one by one, each delayed by its distance from an origin box, so the grid appears in a ripple spreading outward.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Grid Flags - shared by render, play and inspect
// =============================================================================

// gridFlags holds the flags every command accepts for building a grid.
type gridFlags struct {
	delayPerPixel float64
	items         int
	origin        int
	width         float64
	configPath    string
}

func (f *gridFlags) register(fs *pflag.FlagSet) {
	defaults := pipeline.NewOptions()
	fs.Float64Var(&f.delayPerPixel, "delay-per-pixel", defaults.DelayPerPixel, "reveal delay per pixel of distance, in seconds")
	fs.IntVarP(&f.items, "items", "n", defaults.ItemCount, "number of boxes")
	fs.IntVar(&f.origin, "origin", defaults.OriginIndex, "index of the box the ripple starts from")
	fs.Float64Var(&f.width, "width", 0, "container width in pixels (default: fits 3 columns)")
	fs.StringVarP(&f.configPath, "config", "c", "", "config file (.toml, .yaml, .yml)")
}

// options builds pipeline options from defaults, then the config file, then
// any flag set explicitly on the command line. It also returns the loaded
// config file, or nil if none was given.
func (f *gridFlags) options(fs *pflag.FlagSet) (pipeline.Options, *config.File, error) {
	opts := pipeline.NewOptions()

	var file *config.File
	if f.configPath != "" {
		var err error
		if file, err = config.Load(f.configPath); err != nil {
			return opts, nil, err
		}
		file.Apply(&opts)
	}

	if fs.Changed("delay-per-pixel") {
		opts.DelayPerPixel = f.delayPerPixel
	}
	if fs.Changed("items") {
		opts.ItemCount = f.items
	}
	if fs.Changed("origin") {
		opts.OriginIndex = f.origin
	}
	if fs.Changed("width") {
		opts.ContainerWidth = f.width
	}
	return opts, file, nil
}
