package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

type App struct {
	config   *config.Config
	api      client.Client
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewGophAuthClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.api.Close(); err != nil {
			log.Printf("close error: %s", err.Error())
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api != nil && a.api.LoggedIn()
}
