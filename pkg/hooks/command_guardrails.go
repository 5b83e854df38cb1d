package hooks

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// CommandRequirement describes what a command needs from the process environment
// before its action may run.
type CommandRequirement struct {
	Command       string // Command the requirement applies to
	NeedsProvider bool   // RPC_URL and MAIN_PRIVATE_KEY must be valid and the endpoint reachable
	ErrorMessage  string // Appended to the error when the requirement is not met
}

// CommandRequirements lists the commands that talk to the chain.
var CommandRequirements = []CommandRequirement{
	{
		Command:       "drop",
		NeedsProvider: true,
		ErrorMessage:  "The 'drop' command signs transfers. Set RPC_URL and MAIN_PRIVATE_KEY in the environment or in a .env file.",
	},
	{
		Command:       "balances",
		NeedsProvider: true,
		ErrorMessage:  "The 'balances' command queries the chain. Set RPC_URL and MAIN_PRIVATE_KEY in the environment or in a .env file.",
	},
}

// findCommandRequirement finds the requirement rule for a command
func findCommandRequirement(cmdName string) *CommandRequirement {
	for _, req := range CommandRequirements {
		if req.Command == cmdName {
			return &req
		}
	}
	return nil
}

// requirementError decorates err with the command's help message, if it has one.
func requirementError(cCtx *cli.Context, err error) error {
	req := findCommandRequirement(cCtx.Command.Name)
	if req == nil || req.ErrorMessage == "" {
		return err
	}
	return fmt.Errorf("%w\n\n%s", err, req.ErrorMessage)
}
