package domain

// RuleOutcome describes what one rule produced for one page.
type RuleOutcome struct {
	Label   string
	Matched bool
	Value   string
	// Err holds the rule error text, if the rule was invalid for this page.
	Err string
}

// PageInspection is a diagnostic view of a single page.
type PageInspection struct {
	// Index is the zero-based page inspected.
	Index int

	// PageCount is the number of pages in the document.
	PageCount int

	// Text is the extracted page text as the rules see it.
	Text string

	// Rules lists outcomes in rule order.
	Rules []RuleOutcome

	// Page holds the resolved identifier state.
	Page Page

	// ResolveErr is set when resolution itself fails, for example on a
	// missing capture group. Page is then left unresolved.
	ResolveErr string
}
