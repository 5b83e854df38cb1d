package commands

import "github.com/urfave/cli/v2"

const banner = `
|-----------------------------------------------------------------------------|
|      _______  _______  __   __     _______  _______  _______  ______        |
|     |       ||       ||  | |  |   |       ||       ||       ||    _ |       |
|     |    ___||   _   ||  |_|  |   |    ___||    ___||    ___||   | ||       |
|     |   |___ |  | |  ||       |   |   |___ |   |___ |   |___ |   |_||_      |
|     |    ___||  |_|  ||       |   |    ___||    ___||    ___||    __  |     |
|     |   |    |       | |     |    |   |    |   |    |   |___ |   |  | |     |
|     |___|    |_______|  |___|     |___|    |___|    |_______||___|  |_|     |
|                                                                             |
|           FundSplit CLI - Send ETH to a list of addresses                   |
|-----------------------------------------------------------------------------|
`

const trailer = `
                       ╔═══════════════════════════════╗
                       ║        COMPLETE               ║
                       ╚═══════════════════════════════╝
`

// appHelpTemplate frames the stock urfave/cli help with the banner and trailer.
var appHelpTemplate = banner + "\n" + cli.AppHelpTemplate + trailer
