package balances

import (
	"context"

	"fundsplit/pkg/chain"
	"fundsplit/pkg/common"
	"fundsplit/pkg/common/iface"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Reporter prints the native balance of each address, one line per address.
type Reporter struct {
	reader chain.BalanceReader
	logger iface.Logger
}

func NewReporter(reader chain.BalanceReader, logger iface.Logger) *Reporter {
	return &Reporter{reader: reader, logger: logger}
}

// Report queries every address in order and returns how many lookups failed.
// A failed lookup is printed and the remaining addresses are still queried.
func (r *Reporter) Report(ctx context.Context, addrs []ethcommon.Address) int {
	failed := 0
	for i, addr := range addrs {
		if ctx.Err() != nil {
			r.logger.WarnWithActor(iface.ActorChain, "⚠️  Interrupted, skipping remaining balance lookups")
			return failed + len(addrs) - i
		}

		bal, err := r.reader.Balance(ctx, addr)
		if err != nil {
			failed++
			r.logger.ErrorWithActor(iface.ActorChain, "   ❌ Error getting balance for address %s: %v", addr.Hex(), err)
			continue
		}
		r.logger.InfoWithActor(iface.ActorChain, "%s → %s %s", addr.Hex(), common.FormatEther(bal), common.NativeSymbol)
	}
	return failed
}
