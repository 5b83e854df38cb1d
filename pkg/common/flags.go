package common

import (
	"fmt"
	"io"
	"os"
	"slices"

	"fundsplit/pkg/common/iface"
	"fundsplit/pkg/common/logger"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

func init() {
	// -v belongs to --verbose
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "Print the version",
	}
}

// GlobalFlags are accepted both before and after the subcommand.
var GlobalFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable debug output",
	},
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Settings file (TOML, or YAML by .yaml/.yml extension); defaults to ./" + DefaultSettingsFile + " when present",
	},
	&cli.StringFlag{
		Name:  "log-format",
		Usage: "Output format: text or json",
		Value: LogFormatText,
	},
	&cli.Float64Flag{
		Name:  "rpc-rate",
		Usage: "Maximum RPC requests per second (0 for unlimited)",
	},
}

// NewLogger builds the command logger. Text output is colored when out is a terminal.
func NewLogger(format string, out, errOut io.Writer, verbose bool) (iface.Logger, error) {
	switch format {
	case "", LogFormatText:
		base := logger.NewLoggerWithWriters(out, errOut, verbose)
		if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return logger.NewColoredLogger(base), nil
		}
		return base, nil
	case LogFormatJSON:
		return logger.NewZapLogger(out, verbose), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
}

// flagContext returns the innermost context in which name was set explicitly.
// Global flags are registered on the app and on every command, so a value given
// before the subcommand is only visible on the parent context.
func flagContext(cCtx *cli.Context, name string) *cli.Context {
	for _, c := range cCtx.Lineage() {
		if c.App == nil {
			continue
		}
		if slices.Contains(c.LocalFlagNames(), name) {
			return c
		}
	}
	return cCtx
}

func GlobalIsSet(cCtx *cli.Context, name string) bool {
	for _, c := range cCtx.Lineage() {
		if c.App != nil && slices.Contains(c.LocalFlagNames(), name) {
			return true
		}
	}
	return false
}

func GlobalString(cCtx *cli.Context, name string) string {
	return flagContext(cCtx, name).String(name)
}

func GlobalBool(cCtx *cli.Context, name string) bool {
	return flagContext(cCtx, name).Bool(name)
}

func GlobalFloat64(cCtx *cli.Context, name string) float64 {
	return flagContext(cCtx, name).Float64(name)
}
