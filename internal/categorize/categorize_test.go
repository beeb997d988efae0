package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize_ExactMerchant(t *testing.T) {
	c := Default()
	got := c.Categorize("TIM HORTONS #123")
	assert.Equal(t, Result{Category: "Just a little treat"}, got)
}

func TestCategorize_CaseInsensitive(t *testing.T) {
	c := Default()
	assert.Equal(t, "Groceries", c.Categorize("loblaws 1042 toronto").Category)
	assert.Equal(t, "Eating out", c.Categorize("Sushi Place Queen St").Category)
}

func TestCategorize_ExactBeatsKeyword(t *testing.T) {
	c := Default()
	// "restaurant" is an Eating out keyword, TIM HORTONS is an exact merchant.
	got := c.Categorize("TIM HORTONS RESTAURANT")
	assert.Equal(t, "Just a little treat", got.Category)
	assert.False(t, got.NeedsReview)
}

func TestCategorize_MerchantTableOrder(t *testing.T) {
	c := Default()
	assert.Equal(t, "Eating out", c.Categorize("UBER EATS TORONTO").Category)
	assert.Equal(t, "Transportation", c.Categorize("UBER TRIP HELP.UBER.COM").Category)
}

func TestCategorize_Keyword(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"JOE'S PIZZA", "Eating out"},
		{"GREEN P PARKING", "Transportation"},
		{"AIR CANADA 0142", "Travel"},
		{"CINEPLEX ODEON", "Entertainment"},
		{"IKEA NORTH YORK", "Shopping"},
	}
	c := Default()
	for _, tt := range tests {
		got := c.Categorize(tt.desc)
		assert.Equal(t, tt.want, got.Category, "Categorize(%q)", tt.desc)
		assert.False(t, got.NeedsReview, "Categorize(%q)", tt.desc)
	}
}

func TestCategorize_MarketplaceAlwaysReviewed(t *testing.T) {
	c := Default()
	for _, desc := range []string{
		"AMZN Mktp CA*2K4LM0",
		"FACEBOOK MARKETPLACE PIZZA OVEN",
	} {
		got := c.Categorize(desc)
		assert.NotEqual(t, DefaultCategory, got.Category, "keyword should still match %q", desc)
		assert.True(t, got.NeedsReview, "Categorize(%q)", desc)
	}
}

func TestCategorize_Fallback(t *testing.T) {
	c := Default()
	for _, desc := range []string{"XYZ HOLDINGS 0001", "REFUND - ORDER 443", ""} {
		got := c.Categorize(desc)
		assert.Equal(t, DefaultCategory, got.Category)
		assert.True(t, got.NeedsReview)
	}
}

func TestNew_ExtraEntriesAfterBuiltIns(t *testing.T) {
	c := New(
		[]Merchant{
			{Match: "Tim Hortons", Category: "Coffee budget"},
			{Match: "Dojo Gym", Category: "Fitness"},
			{Match: "", Category: "ignored"},
		},
		[]KeywordRule{
			{Category: "Fitness", Keywords: []string{"yoga", ""}},
			{Category: "Empty"},
		},
	)

	// Built-in wins over a configured duplicate.
	assert.Equal(t, "Just a little treat", c.Categorize("TIM HORTONS #9").Category)
	assert.Equal(t, "Fitness", c.Categorize("DOJO GYM MONTHLY").Category)
	assert.Equal(t, "Fitness", c.Categorize("HOT YOGA STUDIO").Category)
	assert.Equal(t, DefaultCategory, c.Categorize("nothing").Category)
}

func TestTablesAreWellFormed(t *testing.T) {
	for _, m := range defaultMerchants {
		assert.NotEmpty(t, m.Match)
		assert.NotEmpty(t, m.Category, "merchant %q", m.Match)
	}
	seen := make(map[string]bool)
	for _, k := range defaultKeywords {
		assert.False(t, seen[k.Category], "duplicate keyword category %q", k.Category)
		seen[k.Category] = true
		assert.NotEmpty(t, k.Keywords, "category %q", k.Category)
	}
}
