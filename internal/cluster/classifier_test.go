package cluster

import (
	"testing"

	"github.com/rickgao/zora-dashboard/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		tok  model.Token
		want model.Topic
	}{
		{
			name: "animals",
			tok:  model.Token{Name: "Doge Moon", Description: "dog meme coin"},
			want: model.TopicAnimals,
		},
		{
			name: "ai",
			tok:  model.Token{Name: "GPT Agent", Description: "ai trading bot"},
			want: model.TopicAITech,
		},
		{
			name: "no keywords",
			tok:  model.Token{Name: "Random"},
			want: model.TopicOther,
		},
		{
			name: "empty record",
			tok:  model.Token{},
			want: model.TopicOther,
		},
		{
			name: "case insensitive",
			tok:  model.Token{Name: "PIZZA PARTY", Symbol: "ZA"},
			want: model.TopicFood,
		},
		{
			name: "symbol only",
			tok:  model.Token{Symbol: "NBA"},
			want: model.TopicSports,
		},
		{
			name: "higher score beats earlier topic",
			tok:  model.Token{Name: "bot", Description: "pepe frog with a cat"},
			want: model.TopicAnimals,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.tok); got != tt.want {
				t.Errorf("Classify(%+v) = %q, want %q", tt.tok, got, tt.want)
			}
		})
	}
}

func TestClassify_TieBreakUsesVocabularyOrder(t *testing.T) {
	// One keyword each from AI & Tech and Politics.
	tok := model.Token{Name: "gpt", Description: "trump"}
	if got := Classify(tok); got != model.TopicAITech {
		t.Errorf("Classify(gpt trump) = %q, want %q", got, model.TopicAITech)
	}

	// Reversing field order must not change the winner.
	tok = model.Token{Name: "trump", Description: "gpt"}
	if got := Classify(tok); got != model.TopicAITech {
		t.Errorf("Classify(trump gpt) = %q, want %q", got, model.TopicAITech)
	}

	// Sports and Music & Art: Sports is declared first.
	tok = model.Token{Name: "golf", Description: "song"}
	if got := Classify(tok); got != model.TopicSports {
		t.Errorf("Classify(golf song) = %q, want %q", got, model.TopicSports)
	}
}

func TestClassify_RepetitionCountsOnce(t *testing.T) {
	// "gpt" three times is still a single AI keyword; two distinct animal
	// keywords must win.
	tok := model.Token{Name: "gpt gpt gpt", Description: "cat frog"}
	if got := Classify(tok); got != model.TopicAnimals {
		t.Errorf("Classify() = %q, want %q", got, model.TopicAnimals)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	tok := model.Token{Name: "Based Pepe", Description: "viral meme frog on base", Symbol: "BPEPE"}
	first := Classify(tok)
	for i := 0; i < 100; i++ {
		if got := Classify(tok); got != first {
			t.Fatalf("call %d: Classify() = %q, want %q", i, got, first)
		}
	}
}

func TestTopics(t *testing.T) {
	topics := Topics()
	if len(topics) != 11 {
		t.Fatalf("len(Topics()) = %d, want 11", len(topics))
	}
	if topics[0] != model.TopicAITech {
		t.Errorf("Topics()[0] = %q, want %q", topics[0], model.TopicAITech)
	}
	if topics[9] != model.TopicCryptoNative {
		t.Errorf("Topics()[9] = %q, want %q", topics[9], model.TopicCryptoNative)
	}
	if topics[10] != model.TopicOther {
		t.Errorf("Topics()[10] = %q, want %q", topics[10], model.TopicOther)
	}
	for i, topic := range topics {
		if got := topicIndex(topic); got != i {
			t.Errorf("topicIndex(%q) = %d, want %d", topic, got, i)
		}
	}
}
