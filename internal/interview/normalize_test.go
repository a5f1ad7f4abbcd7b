package interview

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: "", expect: ""},
		{name: "lowercases and strips punctuation", input: "Tell me about yourself.", expect: "tell me about yourself"},
		{name: "collapses whitespace", input: "  What   is\tGo?\n", expect: "what is go"},
		{name: "punctuation between words", input: "CI/CD pipelines", expect: "cicd pipelines"},
		{name: "punctuation surrounded by spaces", input: "Go - and Rust", expect: "go and rust"},
		{name: "only punctuation", input: "?!...", expect: ""},
		{name: "keeps underscores and digits", input: "snake_case v2", expect: "snake_case v2"},
		{name: "non-breaking space", input: "What is\u00a0Go?", expect: "what is go"},
		{name: "vertical tab", input: "What is\vGo?", expect: "what is go"},
		{name: "narrow and em spaces", input: "Go\u202f-\u2003Rust", expect: "go rust"},
		{name: "byte order mark", input: "\ufeffWhat is Go?", expect: "what is go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Tell me about yourself.",
		"Go - and Rust",
		"  a  ,  b  ",
		"How do you approach database design and optimization?",
		"¿Qué tal?  ¡Bien!",
		"tabs\tand\nnewlines",
		"What is\u00a0Go?",
		"a\v\u2003 - \u202fb",
	}

	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSameQuestion(t *testing.T) {
	t.Parallel()

	if !SameQuestion("How do you optimize frontend performance?", "how do you   optimize FRONTEND performance") {
		t.Fatal("expected questions to match")
	}
	for _, variant := range []string{"What is\u00a0Go?", "What is\vGo?", "What\u2003is  Go ?"} {
		if !SameQuestion("What is Go?", variant) {
			t.Fatalf("expected %q to match, normalized to %q", variant, Normalize(variant))
		}
	}
	if SameQuestion("What is Go?", "What is Rust?") {
		t.Fatal("expected questions to differ")
	}
}
