package services

import (
	"regexp"
	"strings"

	"spendlens/internal/models"
)

const (
	transferReasonTailWords = 3
	categoryKeyTailWords    = 5
	merchantLabelWords      = 2
)

// categoryRule maps a lowercased description substring onto a category.
// Rules are ordered; the first match wins.
type categoryRule struct {
	keyword  string
	category string
}

var categoryRules = []categoryRule{
	// Income
	{"payroll", models.CategoryIncome},
	{"salary", models.CategoryIncome},
	{"wages", models.CategoryIncome},

	// Groceries
	{"woolworths", models.CategoryGroceries},
	{"coles", models.CategoryGroceries},
	{"aldi", models.CategoryGroceries},
	{"iga", models.CategoryGroceries},
	{"harris farm", models.CategoryGroceries},
	{"groceries", models.CategoryGroceries},

	// Dining
	{"mcdonald", models.CategoryDining},
	{"kfc", models.CategoryDining},
	{"subway", models.CategoryDining},
	{"domino", models.CategoryDining},
	{"hungry jack", models.CategoryDining},
	{"nandos", models.CategoryDining},
	{"uber eats", models.CategoryDining},
	{"menulog", models.CategoryDining},
	{"doordash", models.CategoryDining},
	{"mex fresh", models.CategoryDining},
	{"mad mex", models.CategoryDining},
	{"oporto", models.CategoryDining},

	// Transport
	{"opal", models.CategoryTransport},
	{"uber", models.CategoryTransport},
	{"taxi", models.CategoryTransport},
	{"transportfornsw", models.CategoryTransport},
	{"transport for nsw", models.CategoryTransport},
	{"bp ", models.CategoryTransport},
	{"shell", models.CategoryTransport},
	{"caltex", models.CategoryTransport},
	{"7-eleven", models.CategoryTransport},

	// Utilities
	{"electricity", models.CategoryUtilities},
	{"energy", models.CategoryUtilities},
	{"water", models.CategoryUtilities},
	{"telstra", models.CategoryUtilities},
	{"optus", models.CategoryUtilities},
	{"vodafone", models.CategoryUtilities},
	{"internet", models.CategoryUtilities},
	{"rent", models.CategoryUtilities},

	// Subscriptions
	{"netflix", models.CategorySubscriptions},
	{"spotify", models.CategorySubscriptions},
	{"youtube", models.CategorySubscriptions},
	{"disney", models.CategorySubscriptions},
	{"apple.com", models.CategorySubscriptions},
	{"microsoft", models.CategorySubscriptions},
	{"amazon prime", models.CategorySubscriptions},
	{"amznprime", models.CategorySubscriptions},
	{"chatgpt", models.CategorySubscriptions},
	{"openai", models.CategorySubscriptions},

	// Health
	{"chemist", models.CategoryHealth},
	{"pharmacy", models.CategoryHealth},
	{"medicare", models.CategoryHealth},
	{"hospital", models.CategoryHealth},
	{"gym", models.CategoryHealth},
	{"fitness", models.CategoryHealth},
	{"anytime fitness", models.CategoryHealth},
	{"barber", models.CategoryHealth},
	{"nails", models.CategoryHealth},

	// Shopping
	{"amazon", models.CategoryShopping},
	{"ebay", models.CategoryShopping},
	{"kmart", models.CategoryShopping},
	{"target", models.CategoryShopping},
	{"big w", models.CategoryShopping},
	{"myer", models.CategoryShopping},
	{"david jones", models.CategoryShopping},
	{"afterpay", models.CategoryShopping},
	{"jb hi fi", models.CategoryShopping},
	{"jb hifi", models.CategoryShopping},

	// ATM / Cash
	{"atm", models.CategoryCash},

	// Transfers. The category label only; filtering relies on the
	// is_transfer flag, not this rule.
	{"transfer", models.CategoryTransfer},
	{"savings", models.CategoryTransfer},

	// Insurance
	{"insurance", models.CategoryInsurance},

	// Education
	{"university", models.CategoryEducation},
	{"tafe", models.CategoryEducation},
}

var (
	// Whole-word match keeps transfer detection high precision: "transferred
	// funds" would over-flag with a plain substring check.
	transferWordPattern = regexp.MustCompile(`(?i)\btransfer\b`)

	maskedAccountPattern = regexp.MustCompile(`(?i)\bxx\d+\b`)
	longNumberPattern    = regexp.MustCompile(`\b\d{4,}\b`)
	nonAlphaPattern      = regexp.MustCompile(`[^a-z\s]`)
	spacesPattern        = regexp.MustCompile(`\s+`)

	paymentPrefixPattern = regexp.MustCompile(`(?i)^(direct debit|bpay|visa purchase|eftpos|dbs\*)\s+`)
	noiseTokenPattern    = regexp.MustCompile(`(?i)\b(\d[\d\-\.]*|pty|ltd|au|nz|us|ca|gb|sg|hk|nsw|vic|qld|sa|wa|tas|nt|act|card|value|date)\b`)
)

// transferNoiseTokens are channel words that carry no purpose information in
// a transfer description
var transferNoiseTokens = map[string]struct{}{
	"transfer": {},
	"to":       {},
	"from":     {},
	"commbank": {},
	"app":      {},
	"internet": {},
	"banking":  {},
	"bank":     {},
	"online":   {},
	"mobile":   {},
}

type categorizerService struct{}

// NewCategorizerService creates the rule-based categorizer
func NewCategorizerService() CategorizerServiceInterface {
	return &categorizerService{}
}

func (s *categorizerService) IsTransfer(description string) bool {
	return transferWordPattern.MatchString(description)
}

func (s *categorizerService) TransferReason(description string) string {
	cleaned := strings.ToLower(strings.TrimSpace(description))
	cleaned = maskedAccountPattern.ReplaceAllString(cleaned, " ")
	cleaned = longNumberPattern.ReplaceAllString(cleaned, " ")
	cleaned = nonAlphaPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(spacesPattern.ReplaceAllString(cleaned, " "))

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if _, noise := transferNoiseTokens[w]; !noise {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return ""
	}

	if len(words) > transferReasonTailWords {
		words = words[len(words)-transferReasonTailWords:]
	}
	return strings.Join(words, " ")
}

func (s *categorizerService) CategorizationKey(description string) string {
	cleaned := strings.ToLower(strings.TrimSpace(description))
	cleaned = paymentPrefixPattern.ReplaceAllString(cleaned, "")
	cleaned = maskedAccountPattern.ReplaceAllString(cleaned, " ")
	cleaned = noiseTokenPattern.ReplaceAllString(cleaned, " ")
	cleaned = nonAlphaPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(spacesPattern.ReplaceAllString(cleaned, " "))

	if cleaned == "" {
		return ""
	}
	words := strings.Fields(cleaned)
	if len(words) > categoryKeyTailWords {
		words = words[len(words)-categoryKeyTailWords:]
	}
	return strings.Join(words, " ")
}

func (s *categorizerService) MerchantLabel(description string) string {
	cleaned := paymentPrefixPattern.ReplaceAllString(strings.TrimSpace(description), "")
	cleaned = maskedAccountPattern.ReplaceAllString(cleaned, " ")
	cleaned = noiseTokenPattern.ReplaceAllString(cleaned, " ")
	cleaned = nonAlphaPattern.ReplaceAllString(strings.ToLower(cleaned), " ")
	cleaned = strings.TrimSpace(spacesPattern.ReplaceAllString(cleaned, " "))

	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return "Unknown"
	}
	if len(words) > merchantLabelWords {
		words = words[:merchantLabelWords]
	}
	return titleCase(strings.Join(words, " "))
}

func (s *categorizerService) Categorize(description string) string {
	if description == "" {
		return ""
	}

	lowered := strings.ToLower(description)

	// Transfers classify by their trailing purpose phrase when one exists,
	// so "Transfer to xx6405 CommBank app Rent" lands in Utilities rather
	// than the catch-all Transfer bucket.
	if s.IsTransfer(description) {
		if reason := s.TransferReason(description); reason != "" {
			for _, rule := range categoryRules {
				if strings.Contains(reason, rule.keyword) {
					return rule.category
				}
			}
		}
		return models.CategoryTransfer
	}

	if key := s.CategorizationKey(description); key != "" {
		for _, rule := range categoryRules {
			if strings.Contains(key, rule.keyword) {
				return rule.category
			}
		}
	}

	for _, rule := range categoryRules {
		if strings.Contains(lowered, rule.keyword) {
			return rule.category
		}
	}

	return ""
}

func (s *categorizerService) Apply(transaction *models.Transaction) {
	transaction.Category = s.Categorize(transaction.Description)
	transaction.IsTransfer = s.IsTransfer(transaction.Description)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
