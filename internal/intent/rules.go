// Package intent maps recognized finance questions to fixed SQL templates.
//
// Rules are evaluated in priority order against a lowercased question; the
// first rule whose predicate holds wins and later rules are never consulted.
// Questions no rule recognizes fall through to the model-backed translator.
package intent

import (
	"regexp"
	"strings"
)

// Rule pairs a predicate over the normalized question with a SQL template.
// SQL receives the question so parameterized templates can extract values
// from it.
type Rule struct {
	Name  string
	Match func(question string) bool
	SQL   func(question string) string
}

// amountPattern finds the first standalone 3-to-6 digit number in a question,
// e.g. "invoices above 5000".
var amountPattern = regexp.MustCompile(`\b(\d{3,6})\b`)

const defaultAmountThreshold = "1000"

const (
	sqlTotalSpend90Days = `
SELECT SUM(amount) AS total_spend
FROM "Invoice"
WHERE date >= CURRENT_DATE - INTERVAL '90 days';`

	sqlTopVendors = `
SELECT
    COALESCE("Vendor".name, 'Unknown Vendor') AS vendor_name,
    SUM("Invoice".amount) AS total_spend
FROM "Invoice"
LEFT JOIN "Vendor" ON "Invoice"."vendorId" = "Vendor".id
GROUP BY vendor_name
ORDER BY total_spend DESC
LIMIT 5;`

	sqlAverageInvoice = `SELECT AVG(amount) AS avg_invoice_value FROM "Invoice";`

	sqlMonthlyCashOutflow = `
SELECT TO_CHAR(date_trunc('month', date), 'YYYY-MM') AS month,
       SUM(ABS(amount)) AS cash_outflow
FROM "Invoice"
WHERE amount < 0
GROUP BY month
ORDER BY month;`

	sqlSpendByCategory = `
SELECT
    COALESCE("Vendor".category, 'Uncategorized') AS category,
    SUM("Invoice".amount) AS total_spend
FROM "Invoice"
LEFT JOIN "Vendor" ON "Invoice"."vendorId" = "Vendor".id
GROUP BY category
ORDER BY total_spend DESC;`

	sqlOverdueOrPending = `
SELECT "invoiceNo", date, amount, status
FROM "Invoice"
WHERE status ILIKE '%pending%' OR status ILIKE '%overdue%';`

	sqlProcessedThisMonth = `
SELECT "invoiceNo", date, amount, status
FROM "Invoice"
WHERE status ILIKE '%processed%'
AND date >= date_trunc('month', CURRENT_DATE)
ORDER BY date DESC;`

	sqlVendorSpendThisQuarter = `
SELECT
    "Vendor".name AS vendor_name,
    SUM("Invoice".amount) AS total_spend
FROM "Invoice"
LEFT JOIN "Vendor" ON "Invoice"."vendorId" = "Vendor".id
WHERE date >= date_trunc('quarter', CURRENT_DATE)
GROUP BY vendor_name
ORDER BY total_spend DESC;`

	sqlInvoicesAbovePrefix = `
SELECT "invoiceNo", date, amount, status
FROM "Invoice"
WHERE amount > `

	sqlInvoicesAboveSuffix = `
ORDER BY amount DESC;`

	sqlTotalPending = `
SELECT SUM(amount) AS total_pending_amount
FROM "Invoice"
WHERE status ILIKE '%pending%';`

	sqlInvoiceCountByVendor = `
SELECT
    "Vendor".name AS vendor_name,
    COUNT("Invoice".id) AS invoice_count
FROM "Invoice"
LEFT JOIN "Vendor" ON "Invoice"."vendorId" = "Vendor".id
GROUP BY vendor_name
ORDER BY invoice_count DESC;`

	sqlCategorySpendThisYear = `
SELECT
    COALESCE("Vendor".category, 'Uncategorized') AS category,
    SUM("Invoice".amount) AS total_spend
FROM "Invoice"
LEFT JOIN "Vendor" ON "Invoice"."vendorId" = "Vendor".id
WHERE date >= date_trunc('year', CURRENT_DATE)
GROUP BY category
ORDER BY total_spend DESC;`
)

// rules holds the dispatch table in priority order. Keep the order stable:
// reordering changes which template an ambiguous question resolves to.
var rules = []Rule{
	{
		Name:  "total_spend_90_days",
		Match: func(q string) bool { return contains(q, "total spend") && contains(q, "90") },
		SQL:   fixed(sqlTotalSpend90Days),
	},
	{
		Name:  "top_vendors_by_spend",
		Match: func(q string) bool { return contains(q, "top") && contains(q, "vendor") },
		SQL:   fixed(sqlTopVendors),
	},
	{
		Name:  "average_invoice_value",
		Match: func(q string) bool { return contains(q, "average") && contains(q, "invoice") },
		SQL:   fixed(sqlAverageInvoice),
	},
	{
		Name:  "monthly_cash_outflow",
		Match: func(q string) bool { return contains(q, "cash outflow") || contains(q, "expenses") },
		SQL:   fixed(sqlMonthlyCashOutflow),
	},
	{
		Name: "spend_by_category",
		Match: func(q string) bool {
			return contains(q, "spend by category") || contains(q, "category spend")
		},
		SQL: fixed(sqlSpendByCategory),
	},
	{
		Name:  "overdue_or_pending_invoices",
		Match: func(q string) bool { return contains(q, "overdue") || contains(q, "pending") },
		SQL:   fixed(sqlOverdueOrPending),
	},
	{
		Name: "processed_this_month",
		Match: func(q string) bool {
			return contains(q, "processed") && (contains(q, "this month") || contains(q, "current month"))
		},
		SQL: fixed(sqlProcessedThisMonth),
	},
	{
		Name: "vendor_spend_this_quarter",
		Match: func(q string) bool {
			return contains(q, "compare") && contains(q, "vendor") && contains(q, "quarter")
		},
		SQL: fixed(sqlVendorSpendThisQuarter),
	},
	{
		Name:  "invoices_above_amount",
		Match: func(q string) bool { return contains(q, "above") && contains(q, "invoice") },
		SQL: func(q string) string {
			return sqlInvoicesAbovePrefix + extractThreshold(q) + sqlInvoicesAboveSuffix
		},
	},
	{
		Name: "total_pending_amount",
		Match: func(q string) bool {
			return contains(q, "total pending") || contains(q, "pending amount")
		},
		SQL: fixed(sqlTotalPending),
	},
	{
		Name:  "invoice_count_by_vendor",
		Match: func(q string) bool { return contains(q, "invoice count") && contains(q, "vendor") },
		SQL:   fixed(sqlInvoiceCountByVendor),
	},
	{
		Name:  "category_spend_this_year",
		Match: func(q string) bool { return contains(q, "category") && contains(q, "this year") },
		SQL:   fixed(sqlCategorySpendThisYear),
	},
}

// Rules returns the dispatch table in priority order.
func Rules() []Rule {
	return rules
}

// Resolve evaluates the rule table against a normalized (lowercased, trimmed)
// question and returns the first matching template's SQL together with the
// rule name. ok is false when no rule recognizes the question.
func Resolve(question string) (sql string, rule string, ok bool) {
	for _, r := range rules {
		if r.Match(question) {
			return r.SQL(question), r.Name, true
		}
	}
	return "", "", false
}

// extractThreshold pulls the first standalone 3-to-6 digit amount out of the
// question, defaulting when the question names none. The match is digits-only,
// so interpolating it into the template cannot change the statement shape.
func extractThreshold(question string) string {
	if m := amountPattern.FindStringSubmatch(question); m != nil {
		return m[1]
	}
	return defaultAmountThreshold
}

func contains(question, substr string) bool {
	return strings.Contains(question, substr)
}

func fixed(sql string) func(string) string {
	return func(string) string { return sql }
}
