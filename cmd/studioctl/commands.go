package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dom/studio-api/internal/client"
	"github.com/dom/studio-api/internal/domain"
)

type app struct {
	api    *client.Client
	apiURL string
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("user", "", "Username or email")
	password := fs.String("password", os.Getenv("STUDIO_PASSWORD"), "Password (defaults to $STUDIO_PASSWORD)")
	fs.Parse(args)

	if *user == "" || *password == "" {
		return errors.New("--user and --password (or STUDIO_PASSWORD) are required")
	}

	resp, err := a.api.Login(ctx, *user, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in to %s as %s\n", a.apiURL, resp.Admin.Username)
	return nil
}

func (a *app) logout() error {
	if err := a.api.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	admin, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (id %s)\n", admin.Username, admin.Email, admin.ID)
	return nil
}

func (a *app) comments(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: studioctl comments pending | approve <id> [--reject]")
	}

	switch args[0] {
	case "pending":
		fs := flag.NewFlagSet("comments pending", flag.ExitOnError)
		serviceName := fs.String("service", "", "Only comments for this service")
		fs.Parse(args[1:])

		pending := false
		comments, err := a.api.ListAllComments(ctx, *serviceName, &pending)
		if err != nil {
			return err
		}
		if len(comments) == 0 {
			fmt.Println("No comments waiting for approval")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSERVICE\tFROM\tRATING\tCOMMENT")
		for _, c := range comments {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", c.ID, c.ServiceName, c.UserName, c.Rating, truncate(c.Comment, 60))
		}
		return tw.Flush()

	case "approve":
		if len(args) < 2 {
			return errors.New("usage: studioctl comments approve <id> [--reject]")
		}
		fs := flag.NewFlagSet("comments approve", flag.ExitOnError)
		reject := fs.Bool("reject", false, "Hide the comment again")
		fs.Parse(args[2:])

		c, err := a.api.ApproveComment(ctx, args[1], !*reject)
		if err != nil {
			return err
		}
		state := "approved"
		if !c.Approved {
			state = "hidden"
		}
		fmt.Printf("Comment %s is now %s\n", c.ID, state)
		return nil

	default:
		return fmt.Errorf("unknown comments subcommand %q", args[0])
	}
}

func (a *app) contacts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: studioctl contacts list [--status=new] | status <id> <status>")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("contacts list", flag.ExitOnError)
		status := fs.String("status", "", "Filter by status (new, contacted, booked, archived)")
		fs.Parse(args[1:])

		contacts, err := a.api.ListContacts(ctx, domain.ContactStatus(*status))
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tNAME\tEMAIL\tEVENT\tDATE")
		for _, c := range contacts {
			date := "-"
			if c.EventDate != nil {
				date = c.EventDate.Format("2006-01-02")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Status, c.Name, c.Email, c.EventType, date)
		}
		return tw.Flush()

	case "status":
		if len(args) != 3 {
			return errors.New("usage: studioctl contacts status <id> <status>")
		}
		status := domain.ContactStatus(args[2])
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q", args[2])
		}

		c, err := a.api.SetContactStatus(ctx, args[1], status)
		if err != nil {
			return err
		}
		fmt.Printf("Enquiry from %s marked %s\n", c.Name, c.Status)
		return nil

	default:
		return fmt.Errorf("unknown contacts subcommand %q", args[0])
	}
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
