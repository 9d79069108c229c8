// ABOUTME: Integration tests for the import and turn commands
// ABOUTME: Runs against a temporary database selected via the environment
package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCorpus = `[
  {
    "title": "Драники",
    "portions": 4,
    "time": "30 минут",
    "ingredients": [
      {"name": "картофель", "amount": "6 шт"},
      {"name": "лук", "amount": "1 шт"}
    ],
    "steps": [
      "Натрите картофель и лук.",
      "Обжарьте оладьи с двух сторон."
    ]
  },
  {
    "title": "Паста Карбонара",
    "portions": 2,
    "time": "25 минут",
    "ingredients": [
      {"name": "спагетти", "amount": "200 г"},
      {"name": "бекон", "amount": "150 г"}
    ],
    "steps": [
      "Отварите спагетти.",
      "Смешайте с соусом и подавайте."
    ]
  }
]`

func useTempDB(t *testing.T) {
	t.Helper()
	t.Setenv("BENEDICT_DB_PATH", filepath.Join(t.TempDir(), "benedict.db"))
	t.Setenv("BENEDICT_STORE", "sqlite")
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.json")
	if err := os.WriteFile(path, []byte(testCorpus), 0o644); err != nil {
		t.Fatalf("writing corpus: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("benedict %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestImportCmd(t *testing.T) {
	useTempDB(t)

	out := runCLI(t, "import", writeCorpus(t))
	if !strings.Contains(out, "Imported 2 recipes") {
		t.Errorf("output %q does not report the import", out)
	}
}

func TestImportCmd_VerboseListsTitles(t *testing.T) {
	useTempDB(t)

	out := runCLI(t, "--verbose", "import", writeCorpus(t))
	for _, want := range []string{"Imported: Драники", "Imported: Паста Карбонара"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output %q does not contain %q", out, want)
		}
	}
}

func TestImportCmd_MissingFile(t *testing.T) {
	useTempDB(t)

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"import", "/no/such/file.json"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for a missing corpus file")
	}
}

func TestTurnCmd_Conversation(t *testing.T) {
	useTempDB(t)
	runCLI(t, "import", writeCorpus(t))

	out := runCLI(t, "turn", "--session", "s1", "--user", "tester", "--new", "")
	if !strings.Contains(out, "Здравствуйте") {
		t.Errorf("greeting turn output = %q", out)
	}

	out = runCLI(t, "turn", "--session", "s1", "--user", "tester", "как приготовить карбонару")
	if !strings.Contains(out, "Паста Карбонара") {
		t.Errorf("search turn output = %q, want the found recipe", out)
	}

	out = runCLI(t, "turn", "--session", "s1", "--user", "tester", "дальше")
	if !strings.Contains(out, "Отварите спагетти.") {
		t.Errorf("cooking turn output = %q, want the first step", out)
	}
}

func TestTurnCmd_JSONOutput(t *testing.T) {
	useTempDB(t)
	runCLI(t, "import", writeCorpus(t))

	out := runCLI(t, "--format", "json", "turn", "--session", "s2", "--user", "tester", "--new", "")
	if !strings.Contains(out, `"reply"`) {
		t.Errorf("output %q is not the JSON payload", out)
	}
}

func TestSearchCmd(t *testing.T) {
	useTempDB(t)
	runCLI(t, "import", writeCorpus(t))

	out := runCLI(t, "search", "картофель")
	if !strings.Contains(out, "Драники") {
		t.Errorf("output %q does not list the matching recipe", out)
	}
}
