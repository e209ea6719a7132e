package intent

import (
	"strings"
	"testing"
)

func TestResolveKnownQuestions(t *testing.T) {
	tests := []struct {
		question string
		rule     string
		fragment string
	}{
		{"what is my total spend in the last 90 days", "total_spend_90_days", "INTERVAL '90 days'"},
		{"show top 5 vendors by spend", "top_vendors_by_spend", "'Unknown Vendor'"},
		{"what is the average invoice value", "average_invoice_value", "AVG(amount)"},
		{"show monthly cash outflow", "monthly_cash_outflow", "SUM(ABS(amount))"},
		{"break down spend by category", "spend_by_category", "COALESCE(\"Vendor\".category, 'Uncategorized')"},
		{"which invoices are overdue", "overdue_or_pending_invoices", "'%overdue%'"},
		{"invoices processed this month", "processed_this_month", "'%processed%'"},
		{"compare vendor spend this quarter", "vendor_spend_this_quarter", "date_trunc('quarter', CURRENT_DATE)"},
		{"list invoices above 5000", "invoices_above_amount", "amount > 5000"},
		// "pending" trips the earlier overdue-or-pending rule before the
		// total-pending rule is reached; the dispatch order keeps it that way.
		{"what is the total pending amount", "overdue_or_pending_invoices", "'%pending%'"},
		{"invoice count per vendor", "invoice_count_by_vendor", "COUNT(\"Invoice\".id)"},
		{"category totals this year", "category_spend_this_year", "date_trunc('year', CURRENT_DATE)"},
	}

	for _, tt := range tests {
		sql, rule, ok := Resolve(tt.question)
		if !ok {
			t.Fatalf("Resolve(%q) did not match", tt.question)
		}
		if rule != tt.rule {
			t.Fatalf("Resolve(%q) rule = %q, want %q", tt.question, rule, tt.rule)
		}
		if !strings.Contains(sql, tt.fragment) {
			t.Fatalf("Resolve(%q) sql = %q, missing %q", tt.question, sql, tt.fragment)
		}
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	// Satisfies both the top-vendors rule (priority 2) and the pending rule
	// (priority 6); the earlier rule must win.
	sql, rule, ok := Resolve("top vendors with pending invoices")
	if !ok {
		t.Fatal("expected a match")
	}
	if rule != "top_vendors_by_spend" {
		t.Fatalf("rule = %q, want top_vendors_by_spend", rule)
	}
	if strings.Contains(sql, "ILIKE") {
		t.Fatalf("sql = %q, resolved via the lower-priority rule", sql)
	}
}

func TestTotalPendingRuleIsShadowed(t *testing.T) {
	// Both trigger phrases of the total-pending rule contain "pending", so the
	// overdue-or-pending rule always claims them first. That shadowing matches
	// the dispatch order of the service this replaces, so the rule stays in the
	// table; exercise its predicate and template directly.
	rule := Rules()[9]
	if rule.Name != "total_pending_amount" {
		t.Fatalf("Rules()[9] = %q, want total_pending_amount", rule.Name)
	}
	for _, phrasing := range []string{"total pending", "pending amount"} {
		if !rule.Match(phrasing) {
			t.Fatalf("rule did not match %q", phrasing)
		}
		if _, resolved, _ := Resolve(phrasing); resolved != "overdue_or_pending_invoices" {
			t.Fatalf("Resolve(%q) rule = %q, expected the earlier rule to shadow", phrasing, resolved)
		}
	}
	if sql := rule.SQL("total pending"); !strings.Contains(sql, "SUM(amount) AS total_pending_amount") {
		t.Fatalf("sql = %q, missing pending sum", sql)
	}
}

func TestResolveRuleOrderIsStable(t *testing.T) {
	want := []string{
		"total_spend_90_days",
		"top_vendors_by_spend",
		"average_invoice_value",
		"monthly_cash_outflow",
		"spend_by_category",
		"overdue_or_pending_invoices",
		"processed_this_month",
		"vendor_spend_this_quarter",
		"invoices_above_amount",
		"total_pending_amount",
		"invoice_count_by_vendor",
		"category_spend_this_year",
	}
	got := Rules()
	if len(got) != len(want) {
		t.Fatalf("len(Rules()) = %d, want %d", len(got), len(want))
	}
	for i, rule := range got {
		if rule.Name != want[i] {
			t.Fatalf("Rules()[%d] = %q, want %q", i, rule.Name, want[i])
		}
	}
}

func TestThresholdExtraction(t *testing.T) {
	sql, _, ok := Resolve("invoices above 5000")
	if !ok {
		t.Fatal("expected a match")
	}
	if !strings.Contains(sql, "amount > 5000") {
		t.Fatalf("sql = %q, want threshold 5000", sql)
	}
}

func TestThresholdDefaultsWithoutNumber(t *testing.T) {
	sql, _, ok := Resolve("invoices above")
	if !ok {
		t.Fatal("expected a match")
	}
	if !strings.Contains(sql, "amount > 1000") {
		t.Fatalf("sql = %q, want default threshold 1000", sql)
	}
}

func TestThresholdIgnoresShortAndLongNumbers(t *testing.T) {
	// Only standalone 3-to-6 digit numbers qualify as thresholds.
	sql, _, ok := Resolve("invoices above 42 from 12345678")
	if !ok {
		t.Fatal("expected a match")
	}
	if !strings.Contains(sql, "amount > 1000") {
		t.Fatalf("sql = %q, want default threshold 1000", sql)
	}
}

func TestResolveNoMatch(t *testing.T) {
	if sql, rule, ok := Resolve("which payment methods do we use most"); ok {
		t.Fatalf("Resolve() matched rule %q with sql %q", rule, sql)
	}
}

func TestResolveAssumesNormalizedInput(t *testing.T) {
	// Callers lowercase before matching; both phrasings are identical once
	// normalized.
	upper, _, ok := Resolve(strings.ToLower("TOTAL SPEND in last 90 days"))
	if !ok {
		t.Fatal("expected a match for normalized uppercase phrasing")
	}
	lower, _, ok := Resolve("total spend 90")
	if !ok {
		t.Fatal("expected a match")
	}
	if upper != lower {
		t.Fatalf("normalized phrasings resolved differently: %q vs %q", upper, lower)
	}
}
