package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/moodkeeper/internal/journal"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	args  []string
	err   error
}

func (f *fakeExec) record(call, arg string) error {
	f.calls = append(f.calls, call)
	f.args = append(f.args, arg)
	return f.err
}

func (f *fakeExec) Analyze(ctx context.Context, text string) error { return f.record("analyze", text) }
func (f *fakeExec) Write(ctx context.Context, text string, _ journal.HealthCorrelates, _ bool) error {
	return f.record("write", text)
}
func (f *fakeExec) List(ctx context.Context) error             { return f.record("list", "") }
func (f *fakeExec) Show(ctx context.Context, id string) error   { return f.record("show", id) }
func (f *fakeExec) Delete(ctx context.Context, id string) error { return f.record("delete", id) }

func silencePrint(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(toString(v)), "\n", " "))
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &printed
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return ""
	}
}

func TestRunREPL_Commands(t *testing.T) {
	silencePrint(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"analyze what a lovely day",
		"write short entry",
		"write",
		"l",
		"show abc",
		"delete abc",
		"foobar",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	readEntry := func() (string, error) { return "from prompt", nil }

	runREPL(context.Background(), exec, bufio.NewScanner(input), readEntry)

	assert.Equal(t, []string{"analyze", "write", "write", "list", "show", "delete"}, exec.calls)
	assert.Equal(t, []string{"what a lovely day", "short entry", "from prompt", "", "abc", "abc"}, exec.args)
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	printed := silencePrint(t)

	input := strings.NewReader("analyze\nshow\ndelete a b\nquit\n")
	exec := &fakeExec{}

	runREPL(context.Background(), exec, bufio.NewScanner(input), nil)

	assert.Empty(t, exec.calls)
	assert.Contains(t, *printed, "Usage: analyze <text>")
	assert.Contains(t, *printed, "Usage: show <id>")
	assert.Contains(t, *printed, "Usage: delete <id>")
	assert.Contains(t, *printed, "Bye!")
}

func TestRunREPL_ErrorsDoNotStopLoop(t *testing.T) {
	printed := silencePrint(t)

	exec := &fakeExec{err: errors.New("boom")}
	input := strings.NewReader("list\nlist\n")

	runREPL(context.Background(), exec, bufio.NewScanner(input), nil)

	assert.Equal(t, []string{"list", "list"}, exec.calls)
	assert.Contains(t, *printed, "Error: boom")
}

func TestRunREPL_ReadEntryError(t *testing.T) {
	silencePrint(t)

	exec := &fakeExec{}
	readEntry := func() (string, error) { return "", errors.New("closed") }

	runREPL(context.Background(), exec, bufio.NewScanner(strings.NewReader("write\n")), readEntry)

	assert.Empty(t, exec.calls)
}
