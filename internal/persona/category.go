// Package persona turns a post into a reply: it detects the post's content
// category from keywords and draws a templated reply in one of the fixed
// persona voices.
package persona

import (
	"strings"

	"CryptoReplyBot/internal/domain"
)

// categoryKeywords pairs a category with the keywords that select it.
// Detection walks this slice in order; the first category with a matching
// keyword wins, so earlier entries shadow later ones.
var categoryKeywords = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryMarketVolatility, []string{
		"crash", "dip", "bear", "bull", "dump", "pump", "market", "price", "down", "up", "sell", "buy",
	}},
	{domain.CategoryAirdrops, []string{
		"airdrop", "free", "claim", "distribution", "eligible", "snapshot",
	}},
	{domain.CategoryStaking, []string{
		"stake", "staking", "yield", "apy", "validator", "rewards", "passive",
	}},
	{domain.CategoryNFT, []string{
		"nft", "collection", "mint", "floor", "opensea", "art",
	}},
	{domain.CategoryDeFi, []string{
		"defi", "farm", "liquidity", "pool", "swap", "lend", "borrow",
	}},
	{domain.CategoryRegulation, []string{
		"sec", "regulation", "compliance", "legal", "government", "ban",
	}},
}

// DetectCategory classifies post text by keyword membership, first match
// wins. Posts matching nothing fall back to the general category.
func DetectCategory(text string) domain.Category {
	lowered := strings.ToLower(text)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.category
			}
		}
	}
	return domain.CategoryGeneral
}
