package categorizer

import (
	"regexp"
	"strings"

	"momo-dashboard/internal/models"
	"momo-dashboard/internal/utils"
)

// Rule pairs a trigger substring with the category it selects and the
// extractor that fills in the remaining fields.
type Rule struct {
	// Trigger is matched against the lower-cased body.
	Trigger string
	// Category picks the label. It receives the lower-cased body so a rule
	// can branch into sub-categories.
	Category func(lower string) string
	// Extract fills Amount, Counterparty and Fee from the body as received.
	// It may leave any of them unset.
	Extract func(tx *models.Transaction, body string)
}

// amount is a digit run with optional "," grouping separators.
const amount = `(\d[\d,]*)`

// nameWords is a run of words within one sentence. A period is only allowed
// as part of an initial such as "J.".
const nameWords = `(?:[a-z]\.|[^\s.]+)(?:\s+(?:[a-z]\.|[^\s.]+))*?`

var (
	receivedAmountRe  = regexp.MustCompile(`(?i)received\s+` + amount + `\s*RWF\s+from`)
	receivedFromRe    = regexp.MustCompile(`(?i)RWF\s+from\s+(.+?)\s*\(`)
	paymentAmountRe   = regexp.MustCompile(`(?i)payment of\s+` + amount + `\s*RWF\s+to`)
	paymentToRe       = regexp.MustCompile(`(?i)RWF\s+to\s+(` + nameWords + `)\s+\d+(?:[\s.]|$)`)
	paymentFeeRe      = regexp.MustCompile(`(?i)Fee (?:was|paid):?\s*` + amount + `\s*RWF`)
	transferAmountRe  = regexp.MustCompile(`(?i)` + amount + `\s*RWF\s+transferred to`)
	transferToRe      = regexp.MustCompile(`(?i)transferred to\s+(.+?)\s*\(`)
	transferFeeRe     = regexp.MustCompile(`(?i)Fee was:?\s*` + amount + `\s*RWF`)
	withdrawnAmountRe = regexp.MustCompile(`(?i)withdrawn\s+` + amount + `\s*RWF`)
	withdrawnAgentRe  = regexp.MustCompile(`(?i)via agent:\s*(.+?)\s*\(`)
	withdrawnFeeRe    = regexp.MustCompile(`(?i)Fee paid:\s*` + amount + `\s*RWF`)
	depositAmountRe   = regexp.MustCompile(`(?i)bank deposit of\s+` + amount + `\s*RWF`)
	bundleAmountRe    = regexp.MustCompile(`(?i)bundle of .+ for\s+` + amount + `\s*RWF`)
	directAmountRe    = regexp.MustCompile(`(?i)transaction of\s+` + amount + `\s*RWF`)
	directInitiatorRe = regexp.MustCompile(`(?i)\bby\s+(.+?)\s+on your`)
)

// defaultRules is evaluated top to bottom; the first trigger found wins.
var defaultRules = []Rule{
	{
		Trigger:  "received",
		Category: fixed(models.CatIncoming),
		Extract: func(tx *models.Transaction, body string) {
			tx.Amount = findAmount(receivedAmountRe, body)
			tx.Counterparty = findText(receivedFromRe, body)
		},
	},
	{
		Trigger: "payment of",
		Category: func(lower string) string {
			switch {
			case utils.Contains(lower, "airtime"):
				return models.CatAirtime
			case utils.Contains(lower, "cash power"):
				return models.CatCashPower
			default:
				return models.CatCodeHolders
			}
		},
		Extract: func(tx *models.Transaction, body string) {
			tx.Amount = findAmount(paymentAmountRe, body)
			tx.Counterparty = findText(paymentToRe, body)
			tx.Fee = findAmount(paymentFeeRe, body)
		},
	},
	{
		Trigger:  "transferred to",
		Category: fixed(models.CatTransfers),
		Extract: func(tx *models.Transaction, body string) {
			tx.Amount = findAmount(transferAmountRe, body)
			tx.Counterparty = findText(transferToRe, body)
			tx.Fee = findAmount(transferFeeRe, body)
		},
	},
	{
		Trigger:  "withdrawn",
		Category: fixed(models.CatWithdrawals),
		Extract: func(tx *models.Transaction, body string) {
			tx.Amount = findAmount(withdrawnAmountRe, body)
			tx.Counterparty = findText(withdrawnAgentRe, body)
			tx.Fee = findAmount(withdrawnFeeRe, body)
		},
	},
	{
		Trigger:  "bank deposit",
		Category: fixed(models.CatBankDeposits),
		Extract: func(tx *models.Transaction, body string) {
			tx.Amount = findAmount(depositAmountRe, body)
		},
	},
	{
		Trigger:  "internet bundle",
		Category: fixed(models.CatBundles),
		Extract: func(tx *models.Transaction, body string) {
			tx.Amount = findAmount(bundleAmountRe, body)
		},
	},
	{
		Trigger:  "one-time password",
		Category: fixed(models.CatOTP),
		Extract:  func(*models.Transaction, string) {},
	},
	{
		Trigger:  "by direct payment",
		Category: fixed(models.CatThirdParty),
		Extract: func(tx *models.Transaction, body string) {
			tx.Amount = findAmount(directAmountRe, body)
			tx.Counterparty = findText(directInitiatorRe, body)
		},
	},
}

// Rules returns a copy of the built-in rule list in priority order.
func Rules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// match returns the first rule whose trigger occurs in lower.
func match(rules []Rule, lower string) (Rule, bool) {
	for _, r := range rules {
		if strings.Contains(lower, r.Trigger) {
			return r, true
		}
	}
	return Rule{}, false
}

func fixed(category string) func(string) string {
	return func(string) string { return category }
}

func findAmount(re *regexp.Regexp, body string) *int64 {
	m := re.FindStringSubmatch(body)
	if len(m) < 2 {
		return nil
	}
	return utils.AmountPtr(m[1])
}

func findText(re *regexp.Regexp, body string) string {
	m := re.FindStringSubmatch(body)
	if len(m) < 2 {
		return ""
	}
	return utils.CleanCounterparty(m[1])
}
