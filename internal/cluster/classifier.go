package cluster

import (
	"strings"

	"github.com/rickgao/zora-dashboard/internal/model"
)

type topicKeywords struct {
	Topic    model.Topic
	Keywords []string
}

// vocabulary is scanned in declaration order; on equal scores the earlier
// topic wins.
var vocabulary = []topicKeywords{
	{model.TopicAITech, []string{"ai", "gpt", "agent", "bot", "robot", "tech", "neural", "llm", "machine", "compute"}},
	{model.TopicPolitics, []string{"trump", "biden", "president", "election", "vote", "maga", "politic", "congress", "senate", "democrat", "republican"}},
	{model.TopicAnimals, []string{"dog", "doge", "cat", "shiba", "inu", "frog", "pepe", "bird", "monkey", "ape", "penguin", "hamster"}},
	{model.TopicFinance, []string{"finance", "money", "bank", "stock", "trading", "invest", "dollar", "cash", "yield", "fund"}},
	{model.TopicGaming, []string{"game", "gaming", "play", "quest", "pixel", "arcade", "rpg", "xbox", "nintendo", "esport"}},
	{model.TopicCulture, []string{"meme", "viral", "culture", "trend", "internet", "tiktok", "vibe", "lol", "based"}},
	{model.TopicFood, []string{"food", "pizza", "burger", "coffee", "taco", "sushi", "snack", "donut", "cookie", "chef"}},
	{model.TopicSports, []string{"sport", "football", "soccer", "nba", "nfl", "basketball", "tennis", "golf", "racing", "olympic"}},
	{model.TopicMusicArt, []string{"music", "art", "song", "album", "artist", "paint", "dance", "rap", "beat", "gallery"}},
	{model.TopicCryptoNative, []string{"crypto", "blockchain", "defi", "nft", "web3", "onchain", "hodl", "wagmi", "degen", "bitcoin", "ethereum"}},
}

// numTopics counts the vocabulary plus the Other bucket.
var numTopics = len(vocabulary) + 1

// Topics returns every label in vocabulary order, Other last.
func Topics() []model.Topic {
	topics := make([]model.Topic, 0, numTopics)
	for _, v := range vocabulary {
		topics = append(topics, v.Topic)
	}
	return append(topics, model.TopicOther)
}

// Classify assigns a topic to a token from its name, description and symbol.
func Classify(tok model.Token) model.Topic {
	i := classifyIndex(tok)
	if i == len(vocabulary) {
		return model.TopicOther
	}
	return vocabulary[i].Topic
}

// ClassifyAll classifies a batch, preserving order.
func ClassifyAll(tokens []model.Token) []model.ClassifiedToken {
	out := make([]model.ClassifiedToken, len(tokens))
	for i, tok := range tokens {
		out[i] = model.ClassifiedToken{Token: tok, Topic: Classify(tok)}
	}
	return out
}

// classifyIndex returns the vocabulary index of the winning topic, or
// len(vocabulary) for Other.
func classifyIndex(tok model.Token) int {
	blob := strings.ToLower(tok.Name + " " + tok.Description + " " + tok.Symbol)

	best, bestScore := len(vocabulary), 0
	for i, v := range vocabulary {
		score := 0
		for _, kw := range v.Keywords {
			if strings.Contains(blob, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// topicIndex maps a label back to its accumulator slot.
func topicIndex(topic model.Topic) int {
	for i, v := range vocabulary {
		if v.Topic == topic {
			return i
		}
	}
	return len(vocabulary)
}
