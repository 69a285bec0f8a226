// Command dashboard is a terminal front end over the athlete tracker
// client SDK: log in, manage the roster, record test scores and view or
// export the leaderboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fitpulse/athlete-tracker/client"
	"github.com/fitpulse/athlete-tracker/models"
	"github.com/fitpulse/athlete-tracker/services"
	"golang.org/x/sync/errgroup"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}

	baseURL := os.Getenv("ATHLETE_TRACKER_API")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	sessionPath := os.Getenv("ATHLETE_TRACKER_SESSION")
	if sessionPath == "" {
		sessionPath = client.DefaultSessionPath()
	}

	session := client.NewSessionStore(sessionPath)
	api := client.New(baseURL, session)
	api.OnUnauthorized = func() {
		fmt.Fprintln(os.Stderr, "session expired, please log in again")
	}
	roster := client.NewRoster(api)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "login":
		return cmdLogin(ctx, api, roster, args[1:])
	case "logout":
		api.Logout()
		fmt.Println("logged out")
		return nil
	case "whoami":
		return cmdWhoami(session)
	case "athletes":
		return cmdAthletes(ctx, roster)
	case "athlete":
		return cmdAthlete(ctx, roster, args[1:])
	case "add-athlete":
		return cmdAddAthlete(ctx, roster, args[1:])
	case "submit-score":
		return cmdSubmitScore(ctx, roster, args[1:])
	case "scores":
		return cmdScores(ctx, roster, args[1:])
	case "leaderboard":
		return cmdLeaderboard(ctx, roster, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: dashboard <command> [flags]

commands:
  login         -email -password -role   authenticate and store a session
  logout                                 clear the stored session
  whoami                                 show the current session
  athletes                               list the roster
  athlete       -id                      show one athlete (live fetch)
  add-athlete   -name -age -gender -sport -email -phone
  submit-score  -athlete -sprint -jump -agility -endurance
  scores        -athlete                 list an athlete's test scores
  leaderboard   [-sport] [-csv file]     ranked standings, optional export`)
}

func cmdLogin(ctx context.Context, api *client.Client, roster *client.Roster, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", string(models.RoleViewer), "expected role: coach or viewer")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("email and password are required")
	}

	if err := api.Login(ctx, *email, *password, models.UserRole(*role)); err != nil {
		return err
	}

	identity, _ := api.Session().Current()
	fmt.Printf("logged in as %s (%s)\n", identity.Name, identity.Role)

	// Warm the roster cache like the dashboard does right after login.
	if _, err := roster.FetchAthletes(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning: failed to prefetch athletes:", err)
	}
	return nil
}

func cmdWhoami(session *client.SessionStore) error {
	identity, ok := session.Current()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s coach=%v\n", identity.Name, identity.Email, identity.Role, session.IsCoach())
	return nil
}

func cmdAthletes(ctx context.Context, roster *client.Roster) error {
	athletes, err := roster.FetchAthletes(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAGE\tGENDER\tSPORT\tEMAIL")
	for _, a := range athletes {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n", a.ID, a.Name, a.Age, a.Gender, a.Sport, a.Email)
	}
	return tw.Flush()
}

func cmdAthlete(ctx context.Context, roster *client.Roster, args []string) error {
	fs := flag.NewFlagSet("athlete", flag.ContinueOnError)
	id := fs.Int("id", 0, "athlete id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("-id is required")
	}

	athlete, err := roster.GetAthleteByID(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Printf("%s (id %d)\n  age: %d\n  gender: %s\n  sport: %s\n  email: %s\n  phone: %s\n",
		athlete.Name, athlete.ID, athlete.Age, athlete.Gender, athlete.Sport, athlete.Email, athlete.Phone)
	if athlete.PhotoURL != nil {
		fmt.Printf("  photo: %s\n", *athlete.PhotoURL)
	}

	latest, err := roster.LatestTestScore(ctx, *id)
	if err != nil {
		return err
	}
	if latest != nil {
		fmt.Printf("  latest test (%s): sprint %.2fs, jump %.1fcm, agility %.2fs, endurance %.1fmin\n",
			latest.CreatedAt.Format("2006-01-02"), latest.SprintTime, latest.VerticalJump, latest.AgilityTest, latest.EnduranceTest)
	}
	return nil
}

func cmdAddAthlete(ctx context.Context, roster *client.Roster, args []string) error {
	fs := flag.NewFlagSet("add-athlete", flag.ContinueOnError)
	name := fs.String("name", "", "athlete name")
	age := fs.Int("age", 0, "age in years")
	gender := fs.String("gender", "", "male, female or other")
	sport := fs.String("sport", "", "sport")
	email := fs.String("email", "", "contact email")
	phone := fs.String("phone", "", "contact phone")
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := roster.AddAthlete(ctx, services.CreateAthleteInput{
		Name:   *name,
		Age:    *age,
		Gender: models.Gender(*gender),
		Sport:  *sport,
		Email:  *email,
		Phone:  *phone,
	})
	if err != nil {
		return err
	}

	fmt.Printf("created athlete %q with id %d\n", created.Name, created.ID)
	return nil
}

func cmdSubmitScore(ctx context.Context, roster *client.Roster, args []string) error {
	fs := flag.NewFlagSet("submit-score", flag.ContinueOnError)
	athleteID := fs.Int("athlete", 0, "athlete id")
	sprint := fs.Float64("sprint", 0, "30m sprint time in seconds")
	jump := fs.Float64("jump", 0, "vertical jump in cm")
	agility := fs.Float64("agility", 0, "agility test time in seconds")
	endurance := fs.Float64("endurance", 0, "endurance run in minutes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	score, err := roster.SubmitScore(ctx, services.SubmitScoreInput{
		AthleteID:     *athleteID,
		SprintTime:    *sprint,
		VerticalJump:  *jump,
		AgilityTest:   *agility,
		EnduranceTest: *endurance,
	})
	if err != nil {
		return err
	}

	fmt.Printf("recorded test score %d for athlete %d\n", score.ID, score.AthleteID)
	return nil
}

func cmdScores(ctx context.Context, roster *client.Roster, args []string) error {
	fs := flag.NewFlagSet("scores", flag.ContinueOnError)
	athleteID := fs.Int("athlete", 0, "athlete id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *athleteID <= 0 {
		return errors.New("-athlete is required")
	}

	scores, err := roster.TestScoresByAthlete(ctx, *athleteID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSPRINT (s)\tJUMP (cm)\tAGILITY (s)\tENDURANCE (min)")
	for _, s := range scores {
		fmt.Fprintf(tw, "%s\t%.2f\t%.1f\t%.2f\t%.1f\n",
			s.CreatedAt.Format("2006-01-02"), s.SprintTime, s.VerticalJump, s.AgilityTest, s.EnduranceTest)
	}
	return tw.Flush()
}

func cmdLeaderboard(ctx context.Context, roster *client.Roster, args []string) error {
	fs := flag.NewFlagSet("leaderboard", flag.ContinueOnError)
	sport := fs.String("sport", client.SportAll, "filter by sport")
	csvPath := fs.String("csv", "", "export the displayed entries to a CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// The roster cache and the ranked list are independent reads.
	var entries []models.LeaderboardEntry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := roster.FetchAthletes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = roster.Leaderboard(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	enriched := client.Enrich(entries, roster.Athletes(), *sport)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tSPORT\tTOTAL\tAVERAGE")
	for _, entry := range enriched {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%.1f\n",
			entry.Rank, entry.Athlete.Name, entry.Athlete.Sport, entry.TotalScore, entry.AverageScore)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer f.Close()
		if err := client.WriteCSV(f, enriched); err != nil {
			return err
		}
		fmt.Printf("exported %d entries to %s\n", len(enriched), *csvPath)
	}

	return nil
}
