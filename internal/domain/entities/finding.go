package entities

// Rule identifies the validation rule that produced a finding.
type Rule string

// Validation rules.
const (
	RuleUniqueIDs            Rule = "US22"
	RuleCorrespondingEntries Rule = "US26"
)

// AllRules lists every rule in execution order.
var AllRules = []Rule{RuleUniqueIDs, RuleCorrespondingEntries}

// Category classifies a finding. US26 findings share one rule tag; the category keeps
// unresolved and inconsistent references apart without changing the rendered message.
type Category string

// Finding categories.
const (
	CategoryDuplicateID           Category = "duplicate-id"
	CategoryUnresolvedReference   Category = "unresolved-reference"
	CategoryInconsistentReference Category = "inconsistent-reference"
)

// Finding is a single detected integrity violation.
type Finding struct {
	Rule     Rule     `json:"rule"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

// String renders the finding as "ERROR <rule>: <message>".
func (f Finding) String() string {
	return "ERROR " + string(f.Rule) + ": " + f.Message
}

// Messages renders findings in order.
func Messages(findings []Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.String()
	}
	return out
}
