package advisor

import "strings"

// tokenAliases maps common ticker-style mentions to the identifiers the
// market sources understand.
var tokenAliases = map[string]string{
	"btc":   "bitcoin",
	"eth":   "ethereum",
	"sol":   "solana",
	"ada":   "cardano",
	"xrp":   "ripple",
	"doge":  "dogecoin",
	"bonk":  "bonk",
	"wif":   "dogwifcoin",
	"jup":   "jupiter-exchange-solana",
	"degen": "degen-base",
}

// ExtractTokens scans the user message for token mentions. Known tickers
// are resolved through the alias table; $-prefixed words pass through
// verbatim so long-tail tokens stay reachable. Results are deduplicated
// lowercase identifiers in mention order.
func ExtractTokens(text string) []string {
	words := strings.Fields(strings.ToLower(text))

	seen := make(map[string]bool)
	var result []string
	add := func(token string) {
		if token != "" && !seen[token] {
			seen[token] = true
			result = append(result, token)
		}
	}

	for _, w := range words {
		if strings.HasPrefix(w, "$") {
			add(strings.Trim(w, "$.,!?"))
			continue
		}
		w = strings.Trim(w, ".,!?")
		if id, ok := tokenAliases[w]; ok {
			add(id)
		}
	}
	return result
}
