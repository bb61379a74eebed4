package summary

import "testing"

func Test_Signature_String(t *testing.T) {
	sig := Signature{
		Name:       "Get",
		Kind:       KindMethod,
		Params:     []Param{{Name: "key", Type: "string"}, {Name: "strict"}},
		ReturnType: "(string, bool)",
	}
	want := "Get(key string, strict) (string, bool)"
	if got := sig.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func Test_Signature_String_NoParams(t *testing.T) {
	sig := Signature{Name: "main", Kind: KindFunction}
	if got := sig.String(); got != "main()" {
		t.Errorf("String() = %q, want main()", got)
	}
}

func Test_RepoSummary_Sort(t *testing.T) {
	repo := &RepoSummary{
		Files: []FileSummary{
			{Path: "b.go"},
			{Path: "a/z.py"},
			{Path: "a/a.py"},
		},
		Skipped: []SkippedFile{
			{Path: "z.bin"},
			{Path: "a.bin"},
		},
	}
	repo.Sort()

	if repo.Files[0].Path != "a/a.py" || repo.Files[1].Path != "a/z.py" || repo.Files[2].Path != "b.go" {
		t.Errorf("files not sorted: %+v", repo.Files)
	}
	if repo.Skipped[0].Path != "a.bin" {
		t.Errorf("skip records not sorted: %+v", repo.Skipped)
	}
}

func Test_RepoSummary_Counts(t *testing.T) {
	repo := &RepoSummary{
		Files: []FileSummary{
			{Signatures: []Signature{
				{Name: "f", Kind: KindFunction},
				{Name: "m", Kind: KindMethod},
				{Name: "C", Kind: KindClass},
			}},
			{Signatures: []Signature{
				{Name: "S", Kind: KindStruct},
				{Name: "I", Kind: KindInterface},
			}},
		},
	}

	functions, classes := repo.Counts()
	if functions != 2 || classes != 3 {
		t.Errorf("Counts() = %d functions, %d classes; want 2, 3", functions, classes)
	}
	if repo.SignatureCount() != 5 {
		t.Errorf("SignatureCount() = %d, want 5", repo.SignatureCount())
	}
}

func Test_RepoSummary_Describe(t *testing.T) {
	repo := &RepoSummary{
		Files: []FileSummary{
			{Signatures: []Signature{{Name: "f", Kind: KindFunction}}},
		},
		Skipped: []SkippedFile{{Path: "x.bin", Reason: "binary file"}},
	}
	want := "Files analyzed: 1\nTotal functions: 1\nTotal classes: 0\nSkipped files: 1"
	if got := repo.Describe(); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
