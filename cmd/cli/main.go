package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "paymint-cli",
		Short: "Paymint CLI tool",
		Long:  `A command line interface for interacting with the Paymint API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Paymint API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Session token (defaults to $PAYMINT_TOKEN)")

	signInCmd := &cobra.Command{
		Use:   "sign-in <email> <name>",
		Short: "Sign in and print a session token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			signIn(args[0], args[1])
		},
	}

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in account",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/api/v1/me", nil)
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List the signed-in account's transactions",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/api/v1/me/transactions", nil)
		},
	}

	var description string
	transferCmd := &cobra.Command{
		Use:   "transfer <recipient> <amount>",
		Short: "Send money to an account number, email, or account ID",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodPost, "/api/v1/transfers", map[string]any{
				"recipient":   args[0],
				"amount":      args[1],
				"description": description,
			})
		},
	}
	transferCmd.Flags().StringVar(&description, "description", "", "Transfer description")

	reportCmd := &cobra.Command{
		Use:   "report-fraud <transaction-id> <report>",
		Short: "Report a transaction as fraudulent and run the analysis",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodPost, "/api/v1/transactions/"+args[0]+"/fraud-report", map[string]any{
				"report": args[1],
			})
		},
	}

	rootCmd.AddCommand(signInCmd, meCmd, historyCmd, transferCmd, reportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func signIn(email, name string) {
	body := map[string]any{"email": email, "name": name}

	result := request(http.MethodPost, "/api/v1/session", body)
	if t, ok := result["token"].(string); ok {
		fmt.Fprintf(os.Stderr, "export PAYMINT_TOKEN=%s\n", t)
	}
}

func request(method, path string, body map[string]any) map[string]any {
	client := &http.Client{Timeout: timeout}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	if token == "" {
		token = os.Getenv("PAYMINT_TOKEN")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
	} else {
		fmt.Println(pretty.String())
	}

	var result map[string]any
	_ = json.Unmarshal(raw, &result)
	return result
}
