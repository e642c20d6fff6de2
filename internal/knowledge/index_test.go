package knowledge_test

import (
	"context"
	"strings"
	"testing"

	"github.com/firebase/genkit/go/genkit"

	"github.com/roadsafe/roadsafe/internal/knowledge"
	"github.com/roadsafe/roadsafe/internal/log"
	"github.com/roadsafe/roadsafe/internal/testutil"
)

func testEmbedder(t *testing.T) *testutil.MockEmbedder {
	t.Helper()
	return testutil.NewMockEmbedder(64)
}

func buildIndex(t *testing.T, records []knowledge.Record) *knowledge.Index {
	t.Helper()
	ctx := context.Background()
	g := genkit.Init(ctx)
	embedder := testEmbedder(t).RegisterEmbedder(g)

	index, err := knowledge.NewIndex(ctx, embedder, records, log.NewNop())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return index
}

func sampleRecords() []knowledge.Record {
	return []knowledge.Record{
		{Content: "Install speed humps on residential streets.", Code: "IRC:99-2018", Clause: "4.2"},
		{Content: "Provide zebra crossings near schools.", Code: "IRC:103-2012", Clause: "6.1"},
		{Content: "Install crash barriers along embankments.", Code: "IRC:119-2015", Clause: "7.3"},
	}
}

func TestLookupReturnsLabeledSnippets(t *testing.T) {
	index := buildIndex(t, sampleRecords())
	if index.Size() != 3 {
		t.Fatalf("Size = %d, want 3", index.Size())
	}

	snippets, err := index.Lookup(context.Background(), "pedestrians crossing near a school", 2)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(snippets) != 2 {
		t.Fatalf("got %d snippets, want 2", len(snippets))
	}
	for _, s := range snippets {
		if s.Content == "" {
			t.Error("snippet has empty content")
		}
		if !strings.HasPrefix(s.Source, "Source: IRC:") || !strings.Contains(s.Source, ", Clause: ") {
			t.Errorf("malformed source label %q", s.Source)
		}
	}
}

func TestLookupClampsDepthToIndexSize(t *testing.T) {
	index := buildIndex(t, sampleRecords())

	// Asking for more than the index holds must not fail.
	snippets, err := index.Lookup(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("Lookup with oversized k: %v", err)
	}
	if len(snippets) != index.Size() {
		t.Errorf("got %d snippets, want %d", len(snippets), index.Size())
	}
}

func TestLookupRejectsNonPositiveDepth(t *testing.T) {
	index := buildIndex(t, sampleRecords())
	if _, err := index.Lookup(context.Background(), "anything", 0); err == nil {
		t.Error("expected error for k=0")
	}
}

func TestLookupIsDeterministic(t *testing.T) {
	index := buildIndex(t, sampleRecords())
	ctx := context.Background()

	first, err := index.Lookup(ctx, "speeding vehicles", 3)
	if err != nil {
		t.Fatal(err)
	}
	second, err := index.Lookup(ctx, "speeding vehicles", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("result counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d differs between identical lookups", i)
		}
	}
}

func TestSentinelIndexServesLookups(t *testing.T) {
	index := buildIndex(t, knowledge.SentinelRecords())

	snippets, err := index.Lookup(context.Background(), "any question at all", 4)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(snippets) != 1 {
		t.Fatalf("got %d snippets, want 1", len(snippets))
	}
	if snippets[0].Content != "Error: Data Source unavailable." {
		t.Errorf("sentinel content = %q", snippets[0].Content)
	}
	if snippets[0].Source != "Source: ERR, Clause: 0" {
		t.Errorf("sentinel source = %q", snippets[0].Source)
	}
}

func TestNewIndexRejectsEmptyRecords(t *testing.T) {
	ctx := context.Background()
	g := genkit.Init(ctx)
	embedder := testEmbedder(t).RegisterEmbedder(g)

	if _, err := knowledge.NewIndex(ctx, embedder, nil, log.NewNop()); err == nil {
		t.Error("expected error for empty record set")
	}
}
