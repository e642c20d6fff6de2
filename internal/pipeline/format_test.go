package pipeline

import "testing"

func TestSplit(t *testing.T) {
	wellFormed := "1. **Recommended Intervention(s):** Install speed humps.\n" +
		"2. **Explanation & Justification:** Speed humps reduce vehicle speeds in residential areas.\n" +
		"3. **Database Reference:** Source: IRC:99-2018, Clause: 4.2"

	tests := []struct {
		name             string
		answer           string
		wantIntervention string
		wantExplanation  string
		wantReference    string
	}{
		{
			name:             "well-formed three sections",
			answer:           wellFormed,
			wantIntervention: "Install speed humps.",
			wantExplanation:  "Speed humps reduce vehicle speeds in residential areas.",
			wantReference:    "Source: IRC:99-2018, Clause: 4.2",
		},
		{
			name: "multiline section bodies",
			answer: "1. **Recommended Intervention(s):**\nInstall crash barriers.\nAdd chevron signs.\n" +
				"2. **Explanation & Justification:**\nBoth address run-off-road crashes\non curves.\n" +
				"3. **Database Reference:**\nSource: IRC:119-2015, Clause: 7.3",
			wantIntervention: "Install crash barriers.\nAdd chevron signs.",
			wantExplanation:  "Both address run-off-road crashes\non curves.",
			wantReference:    "Source: IRC:119-2015, Clause: 7.3",
		},
		{
			// Without a "2." header, section one runs to the end of the text;
			// section three is still extracted from its own header.
			name:             "missing middle section",
			answer:           "1. **Recommended Intervention(s):** Zebra crossing.\n3. **Database Reference:** Source: IRC:103-2012, Clause: 6.1",
			wantIntervention: "Zebra crossing.\n3. **Database Reference:** Source: IRC:103-2012, Clause: 6.1",
			wantExplanation:  "",
			wantReference:    "Source: IRC:103-2012, Clause: 6.1",
		},
		{
			name:             "fallback message passes through whole",
			answer:           FallbackMessage,
			wantIntervention: FallbackMessage,
		},
		{
			name:             "no markers returns whole text as first section",
			answer:           "I could not structure this answer.",
			wantIntervention: "I could not structure this answer.",
		},
		{
			name:   "empty input",
			answer: "",
		},
		{
			name:             "headers without bold markers are not sections",
			answer:           "1. Install signage\n2. Because it helps\n3. No reference",
			wantIntervention: "1. Install signage\n2. Because it helps\n3. No reference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.answer)
			if got.Intervention != tt.wantIntervention {
				t.Errorf("Intervention = %q, want %q", got.Intervention, tt.wantIntervention)
			}
			if got.Explanation != tt.wantExplanation {
				t.Errorf("Explanation = %q, want %q", got.Explanation, tt.wantExplanation)
			}
			if got.Reference != tt.wantReference {
				t.Errorf("Reference = %q, want %q", got.Reference, tt.wantReference)
			}
		})
	}
}

func TestSplitNeverDropsText(t *testing.T) {
	// Whatever the model produced, at least one section must carry it.
	inputs := []string{
		"plain text",
		"1. **Only one section:** content",
		"random **bold** text\nwith lines",
		FallbackMessage,
	}
	for _, in := range inputs {
		got := Split(in)
		if got.Intervention == "" && got.Explanation == "" && got.Reference == "" {
			t.Errorf("Split(%q) dropped all text", in)
		}
	}
}

func TestRoute(t *testing.T) {
	if got := route(VerdictRelevant); got != StageGenerate {
		t.Errorf("route(relevant) = %v, want generate", got)
	}
	if got := route(VerdictIrrelevant); got != StageFallback {
		t.Errorf("route(irrelevant) = %v, want fallback", got)
	}
}

func TestVerdictString(t *testing.T) {
	if VerdictRelevant.String() != "relevant" || VerdictIrrelevant.String() != "irrelevant" {
		t.Error("verdict string labels changed")
	}
}
