package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dom/studio-api/internal/client"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	tokenPath := os.Getenv("STUDIOCTL_TOKEN_FILE")
	if tokenPath == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		tokenPath = p
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &app{
		api:    client.New(apiURL, client.NewFileTokenStore(tokenPath)),
		apiURL: apiURL,
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "login":
		err = app.login(ctx, args)
	case "logout":
		err = app.logout()
	case "whoami":
		err = app.whoami(ctx)
	case "comments":
		err = app.comments(ctx, args)
	case "contacts":
		err = app.contacts(ctx, args)
	case "seed":
		err = app.seed(ctx, args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, client.ErrLoginRequired) {
			fmt.Fprintln(os.Stderr, "Session expired or missing. Run `studioctl login` first.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`studioctl - admin tool for the studio API

USAGE:
  studioctl <command> [options]

COMMANDS:
  login      Log in and remember the token
  logout     Forget the stored token
  whoami     Show the logged in admin
  comments   Moderate comments (pending | approve <id> [--reject])
  contacts   Manage enquiries (list [--status=new] | status <id> <status>)
  seed       Fill an empty site with demo content
  help       Show this help message

ENVIRONMENT:
  API_URL               Backend URL (default: http://localhost:8080)
  STUDIOCTL_TOKEN_FILE  Where the token is kept (default: <config dir>/studioctl/token)
  STUDIO_PASSWORD       Password used by login when --password is not given

EXAMPLES:
  studioctl login --user=rsadmin
  studioctl comments pending
  studioctl comments approve 5b8f2a0e-1c53-4d8e-9a41-3c1f0e2d7b6a
  studioctl contacts status 5b8f2a0e-1c53-4d8e-9a41-3c1f0e2d7b6a booked
  studioctl seed --portfolio=12 --posts=4`)
}
