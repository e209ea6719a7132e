package asker

import (
	"fmt"
	"math/rand"
)

// templateQuestions cover the phrasings the rules resolve directly.
var templateQuestions = []string{
	"What is our total spend in the last 90 days?",
	"Who are our top vendors by spend?",
	"What is the average invoice value?",
	"Show the monthly cash outflow",
	"How does spend break down by category?",
	"Which invoices are overdue or pending?",
	"How many invoices were processed this month?",
	"What did we spend per vendor this quarter?",
	"Show invoices above %d",
	"What is the total pending amount?",
	"Show the invoice count by vendor",
	"How much did each category spend this year?",
}

// freeFormQuestions have no matching rule and exercise the model fallback.
var freeFormQuestions = []string{
	"Which vendor had the biggest month-over-month increase?",
	"What fraction of invoices were paid late?",
	"Compare travel spend against software spend",
	"Which payment method do we use most for large invoices?",
	"What was the median invoice amount last quarter?",
	"List the five most recent invoices from our largest vendor",
}

type Generator struct {
	rnd         *rand.Rand
	freeFormPct int
	cursor      int
}

func NewGenerator(seed int64, freeFormPct int) *Generator {
	return &Generator{
		rnd:         rand.New(rand.NewSource(seed)),
		freeFormPct: freeFormPct,
	}
}

// NextQuestion rotates through the template questions and occasionally
// swaps in a free-form one based on the configured percentage.
func (g *Generator) NextQuestion() string {
	if g.rnd.Intn(100) < g.freeFormPct {
		return freeFormQuestions[g.rnd.Intn(len(freeFormQuestions))]
	}

	question := templateQuestions[g.cursor%len(templateQuestions)]
	g.cursor++
	if question == "Show invoices above %d" {
		return fmt.Sprintf(question, (g.rnd.Intn(90)+1)*100)
	}
	return question
}
