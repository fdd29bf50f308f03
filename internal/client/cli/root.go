package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userName)
}

// Root runs the REPL on the app's input until the user leaves.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to gophauth CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
