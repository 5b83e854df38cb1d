package common

import "time"

// Process configuration read from the environment (or .env).
const (
	EnvRPCURL     = "RPC_URL"
	EnvPrivateKey = "MAIN_PRIVATE_KEY"
)

const DefaultSettingsFile = "fundsplit.toml"

// Built-in defaults, overridden by the settings file and then by flags.
const (
	DefaultAmount                      = "0.25"
	DefaultInputFile                   = "recipients.txt"
	DefaultConfirmations        uint64 = 2
	DefaultConfirmationTimeout         = 180 * time.Second
	DefaultPause                       = 300 * time.Millisecond
	DefaultPollInterval                = 2 * time.Second
)

const (
	// EtherDecimals is the fixed-point scale between ETH and wei.
	EtherDecimals = 18
	NativeSymbol  = "ETH"
)
