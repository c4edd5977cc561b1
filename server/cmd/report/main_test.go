package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,CCAFS LC-40,0,0,F9 v1.0  B0003,v1.0
2,CCAFS LC-40,0,525,F9 v1.0  B0005,v1.0
3,VAFB SLC-4E,0,500,F9 v1.1  B1003,v1.1
4,KSC LC-39A,1,2490,F9 FT B1031.1,FT
5,CCAFS LC-40,1,3600,F9 B4 B1039.2,B4
6,VAFB SLC-4E,1,9600,F9 FT B1036.1,FT
7,KSC LC-39A,0,5300,F9 FT  B1032.1,FT
`

func writeCSV(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "launches.csv")
	if err := os.WriteFile(p, []byte(testCSV), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

// run executes the report command tree with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSites(t *testing.T) {
	out, err := run(t, "sites", "--data", writeCSV(t), "--markdown")
	if err != nil {
		t.Fatalf("sites: %v", err)
	}
	for _, want := range []string{"| ALL | All Sites | 7 |", "| CCAFS LC-40 | CCAFS LC-40 | 3 |", "| KSC LC-39A | KSC LC-39A | 2 |"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSummary_Site(t *testing.T) {
	out, err := run(t, "summary", "--data", writeCSV(t), "--site", "KSC LC-39A", "--markdown")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.HasPrefix(out, "Launch Success Counts for KSC LC-39A\n") {
		t.Errorf("title:\n%s", out)
	}
	for _, want := range []string{"| Success | 1 | 50.0% |", "| Failure | 1 | 50.0% |"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSummary_DefaultsToAllSites(t *testing.T) {
	out, err := run(t, "summary", "--data", writeCSV(t))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "Launch Success Counts for All Sites") {
		t.Errorf("title:\n%s", out)
	}
	// ASCII tables by default.
	if !strings.Contains(out, "───") {
		t.Errorf("expected an ASCII table:\n%s", out)
	}
}

func TestScatter_Range(t *testing.T) {
	out, err := run(t, "scatter", "--data", writeCSV(t), "--low", "4000", "--high", "10000", "--markdown")
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	for _, want := range []string{
		"(4000 to 10000 kg)",
		"| 6 | VAFB SLC-4E | 9600 | Success | FT |",
		"| 7 | KSC LC-39A | 5300 | Failure | FT |",
		"Booster Version: FT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "| 4 | KSC LC-39A |") {
		t.Errorf("2490 kg launch is outside the range:\n%s", out)
	}
}

func TestScatter_DefaultRangeIsDatasetBounds(t *testing.T) {
	out, err := run(t, "scatter", "--data", writeCSV(t), "--markdown")
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if !strings.Contains(out, "(0 to 9600 kg)") {
		t.Errorf("default range:\n%s", out)
	}
	if !strings.Contains(out, "Booster Version: B4, FT, v1.0, v1.1") {
		t.Errorf("categories:\n%s", out)
	}
}

func TestMissingDataset(t *testing.T) {
	_, err := run(t, "sites", "--data", filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing dataset")
	}
	if !strings.Contains(err.Error(), "load dataset") {
		t.Errorf("error: %v", err)
	}
}

func TestUnexpectedArgs(t *testing.T) {
	if _, err := run(t, "sites", "extra"); err == nil {
		t.Error("expected an error for positional arguments")
	}
}
