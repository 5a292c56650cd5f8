package extract

import (
	"strings"
	"testing"

	"github.com/beamdocs/docharvest/constants"
)

func TestBuildPrompt(t *testing.T) {
	system, user := BuildPrompt(constants.DatasetInvoice, "Gesamtsumme: 150,00")
	if !strings.Contains(system, "single JSON object") {
		t.Errorf("system prompt = %q, want the JSON-only instruction", system)
	}
	if !strings.Contains(user, `"total_gross"`) {
		t.Error("invoice prompt does not embed the invoice schema")
	}
	if !strings.Contains(user, "Gesamtsumme: 150,00") {
		t.Error("document text missing from the prompt")
	}

	_, user = BuildPrompt(constants.DatasetOrder, "Bestellung 42")
	if !strings.Contains(user, `"product_article_code"`) {
		t.Error("order prompt does not embed the order schema")
	}
	if strings.Contains(user, `"total_gross"`) {
		t.Error("order prompt leaks invoice schema keys")
	}
}

func TestBuildPromptTruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", maxPromptText+500)
	_, user := BuildPrompt(constants.DatasetInvoice, long)
	if !strings.Contains(user, "(truncated)") {
		t.Error("oversized text was not marked truncated")
	}
	if strings.Contains(user, strings.Repeat("a", maxPromptText+1)) {
		t.Error("prompt carries more than the text budget")
	}
}
