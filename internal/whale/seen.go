package whale

import (
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/rickgao/zora-dashboard/internal/model"
)

const (
	// SeenCapacity is the size above which a SeenSet evicts.
	SeenCapacity = 100
	// SeenRetain is the number of most recent ids kept after eviction.
	SeenRetain = 50
)

// SeenSet remembers the transaction hashes already delivered to one
// subscriber. Ids are kept in insertion order and the oldest are evicted
// first. A SeenSet is not safe for concurrent use.
type SeenSet struct {
	ids *linkedhashset.Set
}

// NewSeenSet returns an empty SeenSet.
func NewSeenSet() *SeenSet {
	return &SeenSet{ids: linkedhashset.New()}
}

// Len returns the number of remembered ids.
func (s *SeenSet) Len() int {
	return s.ids.Size()
}

// Contains reports whether the hash has been seen.
func (s *SeenSet) Contains(txHash string) bool {
	return s.ids.Contains(txHash)
}

// MarkAndFilter returns the candidates not seen before, in input order, and
// marks them as seen. A hash repeated within candidates is returned once.
func (s *SeenSet) MarkAndFilter(candidates []model.Trade) []model.Trade {
	var novel []model.Trade
	for _, tr := range candidates {
		if s.ids.Contains(tr.TxHash) {
			continue
		}
		s.ids.Add(tr.TxHash)
		novel = append(novel, tr)
	}
	s.evict()
	return novel
}

// evict drops the oldest ids once the set exceeds SeenCapacity.
func (s *SeenSet) evict() {
	if s.ids.Size() <= SeenCapacity {
		return
	}

	values := s.ids.Values()
	stale := values[:len(values)-SeenRetain]
	s.ids.Remove(stale...)
}
