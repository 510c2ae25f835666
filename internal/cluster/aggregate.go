package cluster

import (
	"cmp"
	"slices"

	"github.com/rickgao/zora-dashboard/internal/model"
)

// TopMembers is the number of tokens listed per topic summary.
const TopMembers = 5

// accumulator collects one topic's members while a batch is aggregated.
type accumulator struct {
	firstSeen int
	count     int
	volume    float64
	marketCap float64
	members   []model.Token
}

// Aggregate classifies tokens and rolls them up by topic.
//
// Summaries are ordered by aggregate 24h volume descending; equal volumes keep
// the order in which their topics first appeared in the batch. Unknown
// volumes and market caps count as zero.
func Aggregate(tokens []model.Token) []model.TopicSummary {
	accs := make([]accumulator, numTopics)

	for i, ct := range ClassifyAll(tokens) {
		a := &accs[topicIndex(ct.Topic)]
		if a.count == 0 {
			a.firstSeen = i
		}
		a.count++
		a.volume += ct.Token.Volume24h.Or(0)
		a.marketCap += ct.Token.MarketCap.Or(0)
		a.members = append(a.members, ct.Token)
	}

	type ranked struct {
		firstSeen int
		summary   model.TopicSummary
	}

	topics := Topics()
	present := make([]ranked, 0, numTopics)
	for idx := range accs {
		a := &accs[idx]
		if a.count == 0 {
			continue
		}
		present = append(present, ranked{
			firstSeen: a.firstSeen,
			summary: model.TopicSummary{
				Topic:     topics[idx],
				Count:     a.count,
				Volume24h: a.volume,
				MarketCap: a.marketCap,
				Top:       topByVolume(a.members, TopMembers),
			},
		})
	}

	slices.SortStableFunc(present, func(a, b ranked) int {
		if c := cmp.Compare(b.summary.Volume24h, a.summary.Volume24h); c != 0 {
			return c
		}
		return cmp.Compare(a.firstSeen, b.firstSeen)
	})

	out := make([]model.TopicSummary, len(present))
	for i, r := range present {
		out[i] = r.summary
	}
	return out
}

// topByVolume returns up to n members by 24h volume descending, stable on
// input order.
func topByVolume(members []model.Token, n int) []model.Token {
	sorted := slices.Clone(members)
	slices.SortStableFunc(sorted, func(a, b model.Token) int {
		return cmp.Compare(b.Volume24h.Or(0), a.Volume24h.Or(0))
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
