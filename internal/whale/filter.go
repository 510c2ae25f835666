package whale

import (
	"cmp"
	"slices"

	"github.com/rickgao/zora-dashboard/internal/model"
)

// MaxFilteredTrades caps the output of FilterLargeTrades.
const MaxFilteredTrades = 50

// FilterLargeTrades returns the trades whose USD value is at least minUSD,
// annotated with their token and ordered by USD value descending. Equal
// values are ordered by timestamp descending, then transaction hash, so the
// result does not depend on map iteration order.
func FilterLargeTrades(tradesByToken map[model.TokenRef][]model.Trade, minUSD float64) []model.Trade {
	var out []model.Trade
	for ref, trades := range tradesByToken {
		for _, tr := range trades {
			if tr.USD < minUSD {
				continue
			}
			tr.TokenRef = ref
			out = append(out, tr)
		}
	}

	slices.SortFunc(out, compareTrades)

	if len(out) > MaxFilteredTrades {
		out = out[:MaxFilteredTrades]
	}
	return out
}

func compareTrades(a, b model.Trade) int {
	if c := cmp.Compare(b.USD, a.USD); c != 0 {
		return c
	}
	if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
		return c
	}
	if c := cmp.Compare(a.TxHash, b.TxHash); c != 0 {
		return c
	}
	return cmp.Compare(a.TokenRef.Address, b.TokenRef.Address)
}
