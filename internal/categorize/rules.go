package categorize

// Merchant maps a merchant substring to a category.
type Merchant struct {
	Match    string `yaml:"match"`
	Category string `yaml:"category"`
}

// KeywordRule maps a category to the substrings that select it.
type KeywordRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// DefaultCategory is assigned whenever no table entry matches.
const DefaultCategory = "Miscellaneous"

// Order matters in both tables: the first containing entry wins, so more
// specific strings sit above the generic ones they contain (UBER EATS before
// UBER, PRESTO before METRO).
var defaultMerchants = []Merchant{
	{"TIM HORTONS", "Just a little treat"},
	{"STARBUCKS", "Just a little treat"},
	{"SECOND CUP", "Just a little treat"},
	{"DAVIDSTEA", "Just a little treat"},
	{"UBER EATS", "Eating out"},
	{"SKIPTHEDISHES", "Eating out"},
	{"DOORDASH", "Eating out"},
	{"UBER", "Transportation"},
	{"PRESTO", "Transportation"},
	{"METROLINX", "Transportation"},
	{"LOBLAWS", "Groceries"},
	{"NO FRILLS", "Groceries"},
	{"FARM BOY", "Groceries"},
	{"T&T SUPERMARKET", "Groceries"},
	{"METRO ", "Groceries"},
	{"SOBEYS", "Groceries"},
	{"SHOPPERS DRUG MART", "Health"},
	{"LCBO", "Alcohol"},
	{"BEER STORE", "Alcohol"},
	{"NETFLIX", "Subscriptions"},
	{"SPOTIFY", "Subscriptions"},
	{"DISNEY PLUS", "Subscriptions"},
	{"TORONTO HYDRO", "Utilities"},
	{"ENBRIDGE", "Utilities"},
	{"ROGERS", "Utilities"},
	{"BELL CANADA", "Utilities"},
}

var defaultKeywords = []KeywordRule{
	{"Groceries", []string{"grocery", "grocer", "supermarket", "fresh foods"}},
	{"Eating out", []string{"restaurant", "pizza", "sushi", "burger", "ramen", "grill", "bistro", "taco"}},
	{"Just a little treat", []string{"coffee", "cafe", "bakery", "donut", "bubble tea", "gelato", "ice cream"}},
	{"Transportation", []string{"transit", "parking", "petro", "esso", "shell", "taxi", "lyft", "bike share"}},
	{"Subscriptions", []string{"subscription", "prime video", "apple.com/bill", "google *", "youtube", "patreon"}},
	{"Health", []string{"pharmacy", "drug mart", "dental", "clinic", "physio", "optometr"}},
	{"Entertainment", []string{"cinema", "cineplex", "theatre", "ticketmaster", "steam", "nintendo"}},
	{"Travel", []string{"airbnb", "hotel", "air canada", "westjet", "porter air", "expedia", "via rail"}},
	{"Shopping", []string{"amazon", "amzn", "walmart", "costco", "canadian tire", "ikea", "winners", "uniqlo"}},
	{"Utilities", []string{"hydro", "internet", "wireless", "mobility", "insurance"}},
}

// Marketplace purchases can be anything, so a keyword hit is not trusted.
var marketplaceMarkers = []string{"amzn mktp", "marketplace"}
