package config

import _ "embed"

//go:embed default.fundsplit.toml
var DefaultSettingsToml string
