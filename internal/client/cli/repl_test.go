package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Users(ctx context.Context) error {
	f.calls = append(f.calls, "users")
	return nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &out
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"users",
		"signup",
		"login",
		"help",
		"users",
		"",
		"l",
		"foobar",
		"exit",
		"signup",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	want := []string{"signup", "login", "users", "users"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}

	joined := strings.Join(*out, "\n")
	for _, s := range []string{
		"Available commands: signup, login, exit",
		"Please login first",
		"Available commands: users, login, signup, exit",
		"Unknown command:foobar",
		"Bye!",
	} {
		if !strings.Contains(joined, s) {
			t.Fatalf("output missing %q:\n%s", s, joined)
		}
	}
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("register")))

	if len(exec.calls) != 1 || exec.calls[0] != "signup" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
