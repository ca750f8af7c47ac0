package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) Register(ctx context.Context) error {
	s.calls = append(s.calls, "register")
	return nil
}
func (s *stubExec) Login(ctx context.Context) error  { s.calls = append(s.calls, "login"); return nil }
func (s *stubExec) Logout(ctx context.Context) error { s.calls = append(s.calls, "logout"); return nil }
func (s *stubExec) today(ctx context.Context) error  { s.calls = append(s.calls, "today"); return nil }
func (s *stubExec) list(ctx context.Context)         { s.calls = append(s.calls, "list") }
func (s *stubExec) recent(ctx context.Context)       { s.calls = append(s.calls, "recent") }
func (s *stubExec) remove(ctx context.Context, id string) {
	s.calls = append(s.calls, "delete "+id)
}
func (s *stubExec) listGroups(ctx context.Context) { s.calls = append(s.calls, "groups") }
func (s *stubExec) createGroup(ctx context.Context) error {
	s.calls = append(s.calls, "creategroup")
	return nil
}
func (s *stubExec) joinGroup(ctx context.Context) error {
	s.calls = append(s.calls, "join")
	return nil
}
func (s *stubExec) feed(ctx context.Context, groupID string) {
	s.calls = append(s.calls, "feed "+groupID)
}
func (s *stubExec) listTags(ctx context.Context)     { s.calls = append(s.calls, "tags") }
func (s *stubExec) addTag(ctx context.Context) error { s.calls = append(s.calls, "addtag"); return nil }
func (s *stubExec) tagged(ctx context.Context, tagID string) {
	s.calls = append(s.calls, "tagged "+tagID)
}
func (s *stubExec) whoami(ctx context.Context) { s.calls = append(s.calls, "whoami") }

func runScript(t *testing.T, exec *stubExec, script string) []string {
	t.Helper()

	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var printed []string
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "" }, scanner)
	return printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &stubExec{loggedIn: true}

	runScript(t, exec, strings.Join([]string{
		"today",
		"list",
		"l",
		"recent",
		"delete e1",
		"groups",
		"creategroup",
		"join",
		"feed g1",
		"tags",
		"addtag",
		"tagged t1",
		"whoami",
		"logout",
		"exit",
	}, "\n"))

	assert.Equal(t, []string{
		"today", "list", "list", "recent", "delete e1",
		"groups", "creategroup", "join", "feed g1",
		"tags", "addtag", "tagged t1", "whoami", "logout",
	}, exec.calls)
}

func TestRunREPL_ArgsRequired(t *testing.T) {
	exec := &stubExec{loggedIn: true}

	printed := runScript(t, exec, "delete\nfeed\ntagged\nexit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, printed, "Usage: delete <id>")
	assert.Contains(t, printed, "Usage: feed <group-id>")
	assert.Contains(t, printed, "Usage: tagged <tag-id>")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	printedOut := runScript(t, &stubExec{loggedIn: false}, "help\nexit")
	printedIn := runScript(t, &stubExec{loggedIn: true}, "help\nexit")

	var helpOut, helpIn string
	for _, line := range printedOut {
		if strings.HasPrefix(line, "Available commands") {
			helpOut = line
		}
	}
	for _, line := range printedIn {
		if strings.HasPrefix(line, "Available commands") {
			helpIn = line
		}
	}

	assert.Contains(t, helpOut, "register")
	assert.NotContains(t, helpOut, "today")
	assert.Contains(t, helpIn, "today")
	assert.Contains(t, helpIn, "logout")
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	exec := &stubExec{}
	printed := runScript(t, exec, "frobnicate\nexit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, printed, "Unknown command: frobnicate")
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "list")
	assert.Equal(t, []string{"list"}, exec.calls)
}
