package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		want    []Record
		wantErr error
	}{
		{
			name: "standard columns",
			csv: "content,code,clause\n" +
				"Install speed humps,IRC:99,4.2\n" +
				"Zebra crossing,IRC:103,6.1\n",
			want: []Record{
				{Content: "Install speed humps", Code: "IRC:99", Clause: "4.2"},
				{Content: "Zebra crossing", Code: "IRC:103", Clause: "6.1"},
			},
		},
		{
			name: "extra columns ignored and header case-insensitive",
			csv: "S. No.,Content,CODE,Clause,notes\n" +
				"1,Crash barriers,IRC:119,7.3,curve sites\n",
			want: []Record{
				{Content: "Crash barriers", Code: "IRC:119", Clause: "7.3"},
			},
		},
		{
			name: "rows without content skipped",
			csv: "content,code,clause\n" +
				",IRC:99,4.2\n" +
				"Rumble strips,IRC:99,5.6\n",
			want: []Record{
				{Content: "Rumble strips", Code: "IRC:99", Clause: "5.6"},
			},
		},
		{
			name: "missing citation columns tolerated",
			csv:  "content\nInstall signage\n",
			want: []Record{{Content: "Install signage"}},
		},
		{
			name:    "header only",
			csv:     "content,code,clause\n",
			wantErr: ErrNoRecords,
		},
		{
			name:    "empty file",
			csv:     "",
			wantErr: ErrNoRecords,
		},
		{
			name:    "no content column",
			csv:     "code,clause\nIRC:99,4.2\n",
			wantErr: errors.New("any"), // specific message not part of the contract
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCSV(strings.NewReader(tt.csv))

			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if errors.Is(tt.wantErr, ErrNoRecords) && !errors.Is(err, ErrNoRecords) {
					t.Fatalf("err = %v, want ErrNoRecords", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCSV: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("record %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interventions.csv")
	data := "content,code,clause\nInstall speed humps,IRC:99,4.2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(records) != 1 || records[0].Code != "IRC:99" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestSentinelRecords(t *testing.T) {
	recs := SentinelRecords()
	if len(recs) != 1 {
		t.Fatalf("expected exactly one sentinel record, got %d", len(recs))
	}
	r := recs[0]
	if r.Content != "Error: Data Source unavailable." {
		t.Errorf("sentinel content = %q", r.Content)
	}
	if got := SourceLabel(r.Code, r.Clause); got != "Source: ERR, Clause: 0" {
		t.Errorf("sentinel source label = %q", got)
	}
}

func TestSourceLabel(t *testing.T) {
	if got := SourceLabel("IRC:99-2018", "4.2"); got != "Source: IRC:99-2018, Clause: 4.2" {
		t.Errorf("SourceLabel = %q", got)
	}
}
