package commands

import (
	"fundsplit/pkg/common"
	"fundsplit/pkg/common/iface"
	"fundsplit/pkg/recipients"

	"github.com/urfave/cli/v2"
)

var inputFileFlag = &cli.StringFlag{
	Name:    "input-file",
	Aliases: []string{"i"},
	Usage:   "File with one recipient address per line",
	Value:   common.DefaultInputFile,
}

// loadRecipients reads the recipients file named by --input-file, falling back
// to the settings file. Malformed lines are reported and dropped.
func loadRecipients(cCtx *cli.Context, settings *common.Settings, logger iface.Logger) (*recipients.List, error) {
	path := settings.InputFile
	if cCtx.IsSet(inputFileFlag.Name) {
		path = cCtx.String(inputFileFlag.Name)
	}

	list, err := recipients.Load(path)
	if err != nil {
		return nil, err
	}
	logger.DebugWithActor(iface.ActorConfig, "Loaded %d recipient(s) from %s", len(list.Addresses), path)

	if len(list.Skipped) > 0 {
		logger.WarnWithActor(iface.ActorConfig, "⚠️  Skipped %d malformed line(s) in %s", len(list.Skipped), path)
		for _, s := range list.Skipped {
			logger.DebugWithActor(iface.ActorConfig, "line %d: %q is not an address", s.Line, s.Text)
		}
	}
	if list.ReadErr != nil {
		logger.WarnWithActor(iface.ActorConfig, "⚠️  Stopped reading %s early: %v", path, list.ReadErr)
	}
	return list, nil
}
