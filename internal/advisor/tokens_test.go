package advisor

import (
	"testing"
)

func TestExtractTokensSingleMention(t *testing.T) {
	got := ExtractTokens("What about sol?")
	if len(got) != 1 || got[0] != "solana" {
		t.Fatalf("expected [solana], got %v", got)
	}
}

func TestExtractTokensMultipleMentions(t *testing.T) {
	got := ExtractTokens("Compare BTC and ETH")
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %v", got)
	}
	tokens := map[string]bool{}
	for _, tok := range got {
		tokens[tok] = true
	}
	if !tokens["bitcoin"] || !tokens["ethereum"] {
		t.Fatalf("expected bitcoin and ethereum, got %v", got)
	}
}

func TestExtractTokensNoMention(t *testing.T) {
	got := ExtractTokens("What looks good right now?")
	if len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestExtractTokensCaseInsensitive(t *testing.T) {
	got := ExtractTokens("how's SOL doing?")
	if len(got) != 1 || got[0] != "solana" {
		t.Fatalf("expected [solana], got %v", got)
	}
}

func TestExtractTokensDeduplication(t *testing.T) {
	got := ExtractTokens("btc btc btc is the best btc")
	if len(got) != 1 || got[0] != "bitcoin" {
		t.Fatalf("expected [bitcoin], got %v", got)
	}
}

func TestExtractTokensDollarPrefixPassthrough(t *testing.T) {
	got := ExtractTokens("any alpha on $popcat today?")
	if len(got) != 1 || got[0] != "popcat" {
		t.Fatalf("expected [popcat], got %v", got)
	}
}

func TestExtractTokensStripsPunctuation(t *testing.T) {
	got := ExtractTokens("Should I buy doge, or stick with wif?")
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %v", got)
	}
	tokens := map[string]bool{}
	for _, tok := range got {
		tokens[tok] = true
	}
	if !tokens["dogecoin"] || !tokens["dogwifcoin"] {
		t.Fatalf("expected dogecoin and dogwifcoin, got %v", got)
	}
}
