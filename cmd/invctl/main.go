// Command invctl is an interactive terminal front end for the
// InnerVentory API. It drives the same controller the web UI would:
// every attendee change goes through a full event replace and the
// displayed list is always re-fetched after a successful write.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"innerventory/internal/apiclient"
	"innerventory/internal/manager"
	"innerventory/internal/services/events"
)

var (
	baseURL = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	email   = flag.String("email", env("EMAIL", ""), "User e-mail")
	pass    = flag.String("pass", env("PASSWORD", ""), "User password")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

const dateLayout = "2006-01-02"

func main() {
	flag.Parse()

	if *email == "" || *pass == "" {
		fmt.Fprintln(os.Stderr, "FATAL: -email and -pass (or EMAIL/PASSWORD) are required")
		os.Exit(1)
	}

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	api := apiclient.New(*baseURL)
	user, err := api.SignIn(ctx, *email, *pass)
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
	fmt.Printf("signed in as %s (%s)\n", user.Email, user.Role)

	mgr := manager.New(api, func(prompt string) bool {
		fmt.Printf("%s [y/N] ", prompt)
		if !in.Scan() {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(in.Text()), "y")
	}, nil)

	if err := mgr.Refresh(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	printHelp()
	repl(ctx, in, mgr)
}

func repl(ctx context.Context, in *bufio.Scanner, mgr *manager.Manager) {
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch cmd := fields[0]; cmd {
		case "help":
			printHelp()
		case "quit", "exit":
			return
		case "list":
			if err = mgr.Refresh(ctx); err == nil {
				printEvents(mgr.Visible())
			}
		case "find":
			err = doFind(fields[1:], mgr)
		case "create":
			err = doCreate(ctx, fields[1:], mgr)
		case "rename":
			err = doRename(ctx, fields[1:], mgr)
		case "rm":
			err = doDeleteEvent(ctx, fields[1:], mgr)
		case "add":
			err = doAddAttendee(ctx, in, fields[1:], mgr)
		case "edit":
			err = doEditAttendee(ctx, in, fields[1:], mgr)
		case "rma":
			err = doDeleteAttendee(ctx, fields[1:], mgr)
		default:
			fmt.Printf("unknown command %q, try help\n", cmd)
		}

		switch {
		case err == nil:
		case errors.Is(err, manager.ErrValidation),
			errors.Is(err, manager.ErrIndexOutOfRange),
			errors.Is(err, manager.ErrBusy):
			fmt.Println("!", err)
		case errors.Is(err, events.ErrRevisionConflict):
			fmt.Println("! someone changed this event first, run list and retry")
		default:
			fmt.Println("! request failed:", err)
		}
	}
}

func printHelp() {
	fmt.Print(`commands:
  list                          refresh and show events
  find <event|attendee|off> [term]
  create <YYYY-MM-DD> <name…>
  rename <i> <name…>
  rm <i>                        delete event (asks first)
  add <i>                       append attendee to event i
  edit <i> <j>                  edit attendee j of event i
  rma <i> <j>                   delete attendee (asks first)
  quit
`)
}

func printEvents(list []*events.Event) {
	if len(list) == 0 {
		fmt.Println("(no events)")
		return
	}
	for i, ev := range list {
		fmt.Printf("[%d] %s  %s  (%d attendees, rev %d)\n",
			i, ev.Date.Format(dateLayout), ev.Name, len(ev.Attendees), ev.Revision)
		for j, a := range ev.Attendees {
			fmt.Printf("    [%d] %-24s %s -> %s  fitter: %s\n",
				j, a.Name, a.SizeBefore, a.SizeAfter, a.FitterName)
		}
	}
}

func doFind(args []string, mgr *manager.Manager) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: find <event|attendee|off> [term]")
	}
	term := strings.Join(args[1:], " ")
	switch args[0] {
	case "event":
		mgr.SetSearch(term, manager.ModeByEvent)
	case "attendee":
		mgr.SetSearch(term, manager.ModeByAttendee)
	case "off":
		mgr.SetSearch("", manager.ModeNone)
	default:
		return fmt.Errorf("unknown search mode %q", args[0])
	}
	printEvents(mgr.Visible())
	return nil
}

func doCreate(ctx context.Context, args []string, mgr *manager.Manager) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: create <YYYY-MM-DD> <name…>")
	}
	date, err := time.Parse(dateLayout, args[0])
	if err != nil {
		return fmt.Errorf("bad date %q: %w", args[0], err)
	}
	return mgr.CreateEvent(ctx, strings.Join(args[1:], " "), date)
}

func doRename(ctx context.Context, args []string, mgr *manager.Manager) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: rename <i> <name…>")
	}
	i, err := index(args[0])
	if err != nil {
		return err
	}
	list := mgr.Events()
	if i >= len(list) {
		return manager.ErrIndexOutOfRange
	}
	name := strings.Join(args[1:], " ")
	return mgr.UpdateEvent(ctx, list[i].ID, events.UpdateEventRequest{Name: &name})
}

func doDeleteEvent(ctx context.Context, args []string, mgr *manager.Manager) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <i>")
	}
	i, err := index(args[0])
	if err != nil {
		return err
	}
	list := mgr.Events()
	if i >= len(list) {
		return manager.ErrIndexOutOfRange
	}
	return mgr.DeleteEvent(ctx, list[i].ID)
}

func doAddAttendee(ctx context.Context, in *bufio.Scanner, args []string, mgr *manager.Manager) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: add <i>")
	}
	i, err := index(args[0])
	if err != nil {
		return err
	}
	mgr.SetDraft(promptAttendee(in, events.Attendee{}))
	return mgr.AddAttendee(ctx, i, mgr.Draft())
}

func doEditAttendee(ctx context.Context, in *bufio.Scanner, args []string, mgr *manager.Manager) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: edit <i> <j>")
	}
	i, err := index(args[0])
	if err != nil {
		return err
	}
	j, err := index(args[1])
	if err != nil {
		return err
	}
	if err := mgr.StartEditAttendee(i, j); err != nil {
		return err
	}
	mgr.SetDraft(promptAttendee(in, mgr.Draft()))
	return mgr.UpdateAttendee(ctx, i, j, mgr.Draft())
}

func doDeleteAttendee(ctx context.Context, args []string, mgr *manager.Manager) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rma <i> <j>")
	}
	i, err := index(args[0])
	if err != nil {
		return err
	}
	j, err := index(args[1])
	if err != nil {
		return err
	}
	return mgr.DeleteAttendee(ctx, i, j)
}

// promptAttendee fills each attendee field from stdin; an empty answer
// keeps the current value shown in brackets.
func promptAttendee(in *bufio.Scanner, cur events.Attendee) events.Attendee {
	cur.Name = promptField(in, "name", cur.Name)
	cur.SizeBefore = promptField(in, "size before", cur.SizeBefore)
	cur.SizeAfter = promptField(in, "size after", cur.SizeAfter)
	cur.FitterName = promptField(in, "fitter", cur.FitterName)
	cur.PhoneNumber = promptField(in, "phone", cur.PhoneNumber)
	cur.Email = promptField(in, "email", cur.Email)
	return cur
}

func promptField(in *bufio.Scanner, label, cur string) string {
	fmt.Printf("  %s [%s]: ", label, cur)
	if !in.Scan() {
		return cur
	}
	if v := strings.TrimSpace(in.Text()); v != "" {
		return v
	}
	return cur
}

func index(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, manager.ErrIndexOutOfRange
	}
	return i, nil
}
