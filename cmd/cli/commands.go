package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(competitionsCmd)
	rootCmd.AddCommand(clubsCmd)
	rootCmd.AddCommand(clubCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(bookingsCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Log in as the club owning EMAIL and show its summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostForm("/login", url.Values{"email": {args[0]}})
	},
}

var competitionsCmd = &cobra.Command{
	Use:   "competitions",
	Short: "List competitions and whether they are still open",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/competitions")
	},
}

var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "Show the points board",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clubs")
	},
}

var clubCmd = &cobra.Command{
	Use:   "club EMAIL",
	Short: "Show the points of the club owning EMAIL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clubs/" + url.PathEscape(args[0]) + "/points")
	},
}

var bookCmd = &cobra.Command{
	Use:   "book CLUB COMPETITION PLACES",
	Short: "Book places in a competition for a club",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostForm("/bookings", url.Values{
			"club":        {args[0]},
			"competition": {args[1]},
			"places":      {args[2]},
		})
	},
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings CLUB",
	Short: "List the bookings made by a club",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/bookings?club=" + url.QueryEscape(args[0]))
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload clubs, competitions and bookings from disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostForm("/reload", nil)
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Post the points board to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostForm("/notify-points-board", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func performPostForm(endpoint string, form url.Values) error {
	target := host + endpoint
	if dryRun {
		target += "?dry_run=true"
	}
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Post(target, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
