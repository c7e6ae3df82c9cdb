package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively scaffold a toknun.yaml configuration",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat("toknun.yaml"); err == nil {
		return fmt.Errorf("toknun.yaml already exists in this directory")
	}

	var useDatabase bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Connect to a PostgreSQL entity database?",
		Default: false,
	}, &useDatabase); err != nil {
		return err
	}

	var dsn, driver string
	if useDatabase {
		if err := survey.AskOne(&survey.Input{
			Message: "Database DSN:",
			Default: "postgres://localhost:5432/toknun",
		}, &dsn, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		if err := survey.AskOne(&survey.Select{
			Message: "Driver:",
			Options: []string{"pgx", "pq"},
			Default: "pgx",
		}, &driver); err != nil {
			return err
		}
	}

	var useRedis bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Use Redis for the entity cache (instead of in-process)?",
		Default: false,
	}, &useRedis); err != nil {
		return err
	}

	var redisAddr string
	if useRedis {
		if err := survey.AskOne(&survey.Input{
			Message: "Redis address:",
			Default: "localhost:6379",
		}, &redisAddr); err != nil {
			return err
		}
	}

	var portStr string
	if err := survey.AskOne(&survey.Input{
		Message: "HTTP server port:",
		Default: "8080",
	}, &portStr); err != nil {
		return err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("toknun: invalid port %q: %w", portStr, err)
	}

	content := fmt.Sprintf(`dictionaries:
  abbreviations_file: ""
  static_phrases_file: ""
  ambiguous_phrases_file: ""
  names_file: ""

database:
  dsn: %q
  driver: %q

cache:
  addr: %q
  db: 0
  ttl: 1h

server:
  host: localhost
  port: %d
  jwt_secret: ""
`, dsn, driver, redisAddr, port)

	if err := os.WriteFile("toknun.yaml", []byte(content), 0644); err != nil {
		return fmt.Errorf("toknun: write toknun.yaml: %w", err)
	}

	success := color.New(color.FgGreen, color.Bold)
	success.Println("✓ Created toknun.yaml")
	fmt.Println("Run 'toknun serve' to start the HTTP/WebSocket service,")
	fmt.Println("or 'toknun tokenize <file>' to tokenize text from the command line.")

	return nil
}
