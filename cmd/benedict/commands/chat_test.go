// ABOUTME: Integration test for the interactive chat command
// ABOUTME: Feeds scripted lines through stdin and checks the replies
package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestChatCmd_ScriptedSession(t *testing.T) {
	useTempDB(t)
	runCLI(t, "import", writeCorpus(t))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader("сколько рецептов ты знаешь\nхватит\n\n"))
	cmd.SetArgs([]string{"chat", "--user", "tester"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Здравствуйте") {
		t.Errorf("output %q has no greeting", got)
	}
	if !strings.Contains(got, "я знаю 2 рецепта!") {
		t.Errorf("output %q has no recipe count", got)
	}
	if !strings.Contains(got, "Хорошо, остановились") {
		t.Errorf("output %q has no stop acknowledgement", got)
	}
}
