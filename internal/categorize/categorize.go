// Package categorize assigns spending categories to transaction descriptions
// using two ordered lookup tables.
package categorize

import "strings"

// Result is the outcome of categorizing one description.
type Result struct {
	Category    string
	NeedsReview bool
}

// Categorizer is a table-driven, case-insensitive substring classifier.
type Categorizer struct {
	merchants []Merchant
	keywords  []KeywordRule
}

// New returns a Categorizer over the built-in tables. Extra entries are
// consulted after the built-in ones of the same kind.
func New(extraMerchants []Merchant, extraKeywords []KeywordRule) *Categorizer {
	c := &Categorizer{}
	for _, m := range append(append([]Merchant{}, defaultMerchants...), extraMerchants...) {
		if m.Match == "" || m.Category == "" {
			continue
		}
		c.merchants = append(c.merchants, Merchant{Match: strings.ToLower(m.Match), Category: m.Category})
	}
	for _, k := range append(append([]KeywordRule{}, defaultKeywords...), extraKeywords...) {
		rule := KeywordRule{Category: k.Category}
		for _, kw := range k.Keywords {
			if kw != "" {
				rule.Keywords = append(rule.Keywords, strings.ToLower(kw))
			}
		}
		if rule.Category == "" || len(rule.Keywords) == 0 {
			continue
		}
		c.keywords = append(c.keywords, rule)
	}
	return c
}

// Default returns a Categorizer with only the built-in tables.
func Default() *Categorizer {
	return New(nil, nil)
}

// Categorize resolves a description: exact merchants first, then keywords,
// then the default category flagged for review.
func (c *Categorizer) Categorize(description string) Result {
	desc := strings.ToLower(description)

	for _, m := range c.merchants {
		if strings.Contains(desc, m.Match) {
			return Result{Category: m.Category}
		}
	}

	for _, rule := range c.keywords {
		if containsAny(desc, rule.Keywords) {
			return Result{
				Category:    rule.Category,
				NeedsReview: containsAny(desc, marketplaceMarkers),
			}
		}
	}

	return Result{Category: DefaultCategory, NeedsReview: true}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
