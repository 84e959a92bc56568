package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"innerventory/internal/apiclient"
	"innerventory/internal/services/auth"
	"innerventory/internal/services/bras"
	"innerventory/internal/services/events"

	"github.com/brianvoe/gofakeit/v6"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	baseURL = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	email   = flag.String("email", env("EMAIL", "demo@example.com"), "User e-mail")
	pass    = flag.String("pass", env("PASSWORD", "Password123"), "User password")
	nEvents = flag.Int("events", envInt("EVENT_COUNT", 12), "How many events to create")
	nBras   = flag.Int("bras", envInt("BRA_COUNT", 40), "How many inventory items to create")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	fmt.Printf("Init account %s (events=%d, bras=%d) on %s\n", *email, *nEvents, *nBras, *baseURL)

	ctx := context.Background()
	api := apiclient.New(*baseURL)

	if err := ensureUser(ctx, api); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	if err := createEvents(ctx, api, *nEvents); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	if err := createBras(ctx, api, *nBras); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	fmt.Println("✔ done")
}

// ----------------------------------------------------------------------------
// Step 1 – make sure the user exists -----------------------------------------
func ensureUser(ctx context.Context, api *apiclient.Client) error {
	// Try sign-up first …
	_, err := api.Register(ctx, auth.RegisterRequest{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Username:  gofakeit.Username(),
		Email:     *email,
		Password:  *pass,
		Role:      auth.RoleVolunteer,
	})
	if err == nil {
		fmt.Println("• signed-up new user")
		return nil
	}

	// … otherwise fall back to sign-in.
	if _, err := api.SignIn(ctx, *email, *pass); err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}
	fmt.Println("• signed-in existing user")
	return nil
}

// ----------------------------------------------------------------------------
// Step 2 – create events with attendees --------------------------------------
func createEvents(ctx context.Context, api *apiclient.Client, total int) error {
	sizes := []string{"32B", "34B", "34C", "36C", "36D", "38D", "38DD", "40C"}

	for i := 0; i < total; i++ {
		ev, err := api.CreateEvent(ctx, events.CreateEventRequest{
			Name: fmt.Sprintf("%s Fitting at %s", gofakeit.MonthString(), gofakeit.City()),
			Date: gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now().AddDate(0, 6, 0)),
		})
		if err != nil {
			return fmt.Errorf("create event %d/%d: %w", i+1, total, err)
		}

		attendees := make([]events.Attendee, rand.Intn(8))
		for j := range attendees {
			attendees[j] = events.Attendee{
				Name:        gofakeit.Name(),
				SizeBefore:  sizes[rand.Intn(len(sizes))],
				SizeAfter:   sizes[rand.Intn(len(sizes))],
				FitterName:  gofakeit.FirstName(),
				PhoneNumber: gofakeit.Phone(),
				Email:       gofakeit.Email(),
			}
		}
		if len(attendees) > 0 {
			if _, err := api.ReplaceEvent(ctx, ev.ID, events.ReplaceEventRequest{
				Name:      ev.Name,
				Date:      ev.Date,
				Attendees: attendees,
				Revision:  ev.Revision,
			}); err != nil {
				return fmt.Errorf("seed attendees for %s: %w", ev.Name, err)
			}
		}

		if (i+1)%5 == 0 || i+1 == total {
			fmt.Printf("• %d/%d events\n", i+1, total)
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// Step 3 – create inventory items --------------------------------------------
func createBras(ctx context.Context, api *apiclient.Client, total int) error {
	cups := []string{"A", "B", "C", "D", "DD", "DDD"}
	styles := []string{"t-shirt", "sports", "bralette", "push-up", "nursing"}
	conditions := []string{"new", "like-new", "used"}

	for i := 0; i < total; i++ {
		_, err := api.CreateBra(ctx, bras.CreateBraRequest{
			Band:      26 + 2*rand.Intn(16),
			Cup:       cups[rand.Intn(len(cups))],
			Style:     styles[rand.Intn(len(styles))],
			Condition: conditions[rand.Intn(len(conditions))],
			Quantity:  1 + rand.Intn(5),
			DonatedAt: gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
		})
		if err != nil {
			return fmt.Errorf("create bra %d/%d: %w", i+1, total, err)
		}
	}
	fmt.Printf("• %d inventory items\n", total)
	return nil
}
