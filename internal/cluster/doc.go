// Package cluster groups tokens into human-meaningful topics.
//
// Classification is keyword based: each topic of a fixed vocabulary scores
// one point per distinct keyword found in the token's name, description and
// symbol. Aggregation then rolls classified tokens up into per-topic
// summaries ordered by 24h volume.
package cluster
