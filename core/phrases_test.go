package agent

import (
	"reflect"
	"testing"
)

func TestExtractPhrasesSplitsOnSentenceTerminators(t *testing.T) {
	phrases, remainder := extractPhrases("Sure! I can help with that. What toppings")

	if want := []string{"Sure!", "I can help with that."}; !reflect.DeepEqual(phrases, want) {
		t.Fatalf("expected phrases %v, got %v", want, phrases)
	}
	if remainder != "What toppings" {
		t.Fatalf("expected remainder %q, got %q", "What toppings", remainder)
	}
}

func TestExtractPhrasesHoldsIncompleteText(t *testing.T) {
	phrases, remainder := extractPhrases("I would like to")

	if len(phrases) != 0 {
		t.Fatalf("expected no phrases from incomplete text, got %v", phrases)
	}
	if remainder != "I would like to" {
		t.Fatalf("expected buffer kept as remainder, got %q", remainder)
	}
}

func TestExtractPhrasesCommaOnlySplitsPastMinimumIndex(t *testing.T) {
	// The comma sits at index 2, below the minimum, so nothing splits.
	phrases, remainder := extractPhrases("Hi, there friend")
	if len(phrases) != 0 {
		t.Fatalf("expected early comma not to split, got %v", phrases)
	}
	if remainder != "Hi, there friend" {
		t.Fatalf("expected buffer untouched, got %q", remainder)
	}

	// Past the minimum index the comma is a boundary.
	phrases, remainder = extractPhrases("That sounds lovely, what else")
	if want := []string{"That sounds lovely,"}; !reflect.DeepEqual(phrases, want) {
		t.Fatalf("expected comma split past minimum index, got %v", phrases)
	}
	if remainder != "what else" {
		t.Fatalf("expected remainder %q, got %q", "what else", remainder)
	}
}

func TestExtractPhrasesRequiresBoundaryAfterTerminator(t *testing.T) {
	// The period inside the number is not followed by a space, so it does
	// not end a phrase.
	phrases, remainder := extractPhrases("It costs 3.50 in total")
	if len(phrases) != 0 {
		t.Fatalf("expected decimal point not to split, got %v", phrases)
	}
	if remainder != "It costs 3.50 in total" {
		t.Fatalf("expected buffer untouched, got %q", remainder)
	}
}

func TestExtractPhrasesTerminatorAtEndOfBuffer(t *testing.T) {
	phrases, remainder := extractPhrases("What a great choice!")

	if want := []string{"What a great choice!"}; !reflect.DeepEqual(phrases, want) {
		t.Fatalf("expected trailing terminator to split, got %v", phrases)
	}
	if remainder != "" {
		t.Fatalf("expected empty remainder, got %q", remainder)
	}
}

func TestExtractPhrasesHandlesNewlines(t *testing.T) {
	phrases, remainder := extractPhrases("First thought.\nSecond thought. And then")

	if want := []string{"First thought.", "Second thought."}; !reflect.DeepEqual(phrases, want) {
		t.Fatalf("expected newline boundary to split, got %v", phrases)
	}
	if remainder != "And then" {
		t.Fatalf("expected remainder %q, got %q", "And then", remainder)
	}
}
