/*
 * Copyright 2025 Skye Pulse.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cli is the buildmon command surface: page-level operations of
// the monitoring dashboard rendered as subcommands, plus a bubbletea
// TUI for the live dashboard.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/skyepulse/buildmonitor/pkg/client"
	"github.com/skyepulse/buildmonitor/pkg/config"
	"github.com/skyepulse/buildmonitor/pkg/logger"
)

// CmdConfig carries everything parsed from the command line.
type CmdConfig struct {
	SubCmd     string
	ConfigFile string
	Help       bool

	// login
	Email    string
	Password string
	Role     string

	// reports
	ReportID    int64
	ApproveID   int64
	RejectID    int64
	DeleteID    int64
	Location    string
	Description string
	Priority    string
	Citizen     string
	CitizenMail string
	Images      []string

	// encroachments
	EncroachmentID string
	SetStatus      string
	Status         string
	MinConfidence  float64
	Search         string
	Range          string
	Bounds         string

	// alerts
	MarkReadID  int64
	MarkAllRead bool
	UnreadOnly  bool

	// analytics
	Timeline string
	Regions  bool
}

// stringSliceFlag collects a repeatable flag.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string { return strings.Join(*s, ",") }

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// SubcommandHandler defines the interface for parsing subcommand flags.
type SubcommandHandler interface {
	Parse(args []string, cfg *CmdConfig) error
}

func addCommonFlags(fs *flag.FlagSet) *string {
	return fs.String("config", "", "path to buildmon config file (JSON)")
}

// LoginHandler handles flags for the login subcommand.
type LoginHandler struct{}

// Parse processes the command-line arguments for the login subcommand.
func (LoginHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	configFile := addCommonFlags(fs)
	email := fs.String("email", "", "account email (omit for interactive form)")
	password := fs.String("password", "", "account password (omit to read from stdin)")
	role := fs.String("role", "admin", "role to request: admin or citizen")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing login flags: %w", err)
	}

	cfg.ConfigFile = *configFile
	cfg.Email = *email
	cfg.Password = *password
	cfg.Role = *role

	return nil
}

// ReportsHandler handles flags for the reports subcommand.
type ReportsHandler struct{}

// Parse processes the command-line arguments for the reports subcommand.
func (ReportsHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := flag.NewFlagSet("reports", flag.ExitOnError)
	configFile := addCommonFlags(fs)
	id := fs.Int64("id", 0, "show a single report")
	approve := fs.Int64("approve", 0, "approve a pending report by id")
	reject := fs.Int64("reject", 0, "reject a pending report by id")
	del := fs.Int64("delete", 0, "delete a report by id")
	location := fs.String("location", "", "new report: location (required with -create)")
	description := fs.String("description", "", "new report: description (required with -create)")
	priority := fs.String("priority", "", "new report: priority (low, medium, high)")
	citizen := fs.String("citizen-name", "", "new report: reporter name")
	citizenMail := fs.String("citizen-email", "", "new report: reporter email")

	var images stringSliceFlag
	fs.Var(&images, "image", "new report: image file to attach (repeatable)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing reports flags: %w", err)
	}

	cfg.ConfigFile = *configFile
	cfg.ReportID = *id
	cfg.ApproveID = *approve
	cfg.RejectID = *reject
	cfg.DeleteID = *del
	cfg.Location = *location
	cfg.Description = *description
	cfg.Priority = *priority
	cfg.Citizen = *citizen
	cfg.CitizenMail = *citizenMail
	cfg.Images = append([]string(nil), images...)

	return nil
}

// EncroachmentsHandler handles flags for the encroachments subcommand.
type EncroachmentsHandler struct{}

// Parse processes the command-line arguments for the encroachments subcommand.
func (EncroachmentsHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := flag.NewFlagSet("encroachments", flag.ExitOnError)
	configFile := addCommonFlags(fs)
	id := fs.String("id", "", "show a single detection")
	setStatus := fs.String("set-status", "", "move a detection (with -id): verified, resolved, false_positive")
	status := fs.String("status", "", "filter: status (new, verified, resolved, false_positive)")
	minConfidence := fs.Float64("min-confidence", 0, "filter: minimum confidence percentage")
	search := fs.String("search", "", "filter: location substring, case-insensitive")
	dateRange := fs.String("range", "all", "filter: trailing window (all, 7d, 30d, 90d)")
	bounds := fs.String("bounds", "", "query a bounding box: north,south,east,west")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing encroachments flags: %w", err)
	}

	cfg.ConfigFile = *configFile
	cfg.EncroachmentID = *id
	cfg.SetStatus = *setStatus
	cfg.Status = *status
	cfg.MinConfidence = *minConfidence
	cfg.Search = *search
	cfg.Range = *dateRange
	cfg.Bounds = *bounds

	return nil
}

// AlertsHandler handles flags for the alerts subcommand.
type AlertsHandler struct{}

// Parse processes the command-line arguments for the alerts subcommand.
func (AlertsHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := flag.NewFlagSet("alerts", flag.ExitOnError)
	configFile := addCommonFlags(fs)
	markRead := fs.Int64("mark-read", 0, "acknowledge one alert by id")
	markAll := fs.Bool("mark-all-read", false, "acknowledge every alert")
	unread := fs.Bool("unread", false, "list only unread alerts")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing alerts flags: %w", err)
	}

	cfg.ConfigFile = *configFile
	cfg.MarkReadID = *markRead
	cfg.MarkAllRead = *markAll
	cfg.UnreadOnly = *unread

	return nil
}

// AnalyticsHandler handles flags for the analytics subcommand.
type AnalyticsHandler struct{}

// Parse processes the command-line arguments for the analytics subcommand.
func (AnalyticsHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := flag.NewFlagSet("analytics", flag.ExitOnError)
	configFile := addCommonFlags(fs)
	timeline := fs.String("timeline", "", "include the reports timeline (7d, 30d, 90d, 1y)")
	regions := fs.Bool("regions", false, "include encroachments per region")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing analytics flags: %w", err)
	}

	cfg.ConfigFile = *configFile
	cfg.Timeline = *timeline
	cfg.Regions = *regions

	return nil
}

// ConfigOnlyHandler parses subcommands that take only the common flags.
type ConfigOnlyHandler struct {
	Name string
}

// Parse processes the command-line arguments for config-only subcommands.
func (h ConfigOnlyHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := flag.NewFlagSet(h.Name, flag.ExitOnError)
	configFile := addCommonFlags(fs)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing %s flags: %w", h.Name, err)
	}

	cfg.ConfigFile = *configFile

	return nil
}

// ParseArgs parses the subcommand and its flags.
func ParseArgs(args []string) (*CmdConfig, error) {
	cfg := &CmdConfig{}

	if len(args) == 0 {
		cfg.Help = true
		return cfg, nil
	}

	cfg.SubCmd = strings.ToLower(strings.TrimSpace(args[0]))

	subcommands := map[string]SubcommandHandler{
		"login":         LoginHandler{},
		"logout":        ConfigOnlyHandler{Name: "logout"},
		"reports":       ReportsHandler{},
		"encroachments": EncroachmentsHandler{},
		"alerts":        AlertsHandler{},
		"analytics":     AnalyticsHandler{},
		"dashboard":     ConfigOnlyHandler{Name: "dashboard"},
		"watch":         ConfigOnlyHandler{Name: "watch"},
	}

	switch cfg.SubCmd {
	case "help", "-help", "--help", "-h":
		cfg.Help = true
		return cfg, nil
	}

	handler, ok := subcommands[cfg.SubCmd]
	if !ok {
		return cfg, fmt.Errorf("%w: %q", errUnknownCommand, cfg.SubCmd)
	}

	if err := handler.Parse(args[1:], cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// app bundles the wired dependencies behind every subcommand.
type app struct {
	config   *Config
	client   *client.Client
	sessions *client.SessionStore
	logger   logger.Logger
	styles   styles
}

func newApp(ctx context.Context, cmd *CmdConfig) (*app, func(context.Context) error, error) {
	appCfg := &Config{}

	if cmd.ConfigFile != "" || os.Getenv("CONFIG_SOURCE") != "" {
		loader := config.NewConfig(nil)
		if err := loader.LoadAndValidate(ctx, cmd.ConfigFile, appCfg); err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		_ = godotenv.Load()

		if err := appCfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logConfig := appCfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{Level: "warn", Output: "stderr"}
	}

	log, shutdown, err := logger.New(ctx, logConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	sessionPath := appCfg.SessionFile
	if sessionPath == "" {
		sessionPath, err = client.DefaultSessionPath()
		if err != nil {
			return nil, nil, err
		}
	}

	sessions := client.NewSessionStore(sessionPath, log)
	if err := sessions.Load(); err != nil {
		return nil, nil, err
	}

	st := newStyles()

	c, err := client.New(appCfg.APIBaseURL, sessions, log,
		client.WithTimeout(time.Duration(appCfg.Timeout)),
		client.WithOnUnauthorized(func() {
			fmt.Fprintln(os.Stderr, st.error.Render("Session expired. Run: buildmon login"))
		}),
	)
	if err != nil {
		return nil, nil, err
	}

	return &app{
		config:   appCfg,
		client:   c,
		sessions: sessions,
		logger:   log,
		styles:   st,
	}, shutdown, nil
}

// Run parses args and dispatches the chosen subcommand.
func Run(ctx context.Context, args []string) error {
	cmd, err := ParseArgs(args)
	if err != nil {
		return err
	}

	if cmd.Help {
		printUsage()
		return nil
	}

	a, shutdown, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()

	switch cmd.SubCmd {
	case "login":
		return a.runLogin(ctx, cmd)
	case "logout":
		return a.runLogout(ctx)
	case "reports":
		return a.runReports(ctx, cmd)
	case "encroachments":
		return a.runEncroachments(ctx, cmd)
	case "alerts":
		return a.runAlerts(ctx, cmd)
	case "analytics":
		return a.runAnalytics(ctx, cmd)
	case "watch":
		return a.runWatch(ctx)
	case "dashboard":
		return a.runDashboard(ctx)
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd.SubCmd)
	}
}

func printUsage() {
	fmt.Printf(`%s: %s

Usage:
  buildmon <command> [flags]

Commands:
  login          Authenticate and persist the session
  logout         Drop the persisted session
  reports        List, show, create and review citizen reports
  encroachments  List, filter and update satellite detections
  alerts         List and acknowledge alerts
  analytics      Dashboard statistics, timeline and region breakdown
  dashboard      Live TUI dashboard (polls every 30s)
  watch          Headless polling loop printing deltas
  help           Show this message

Run 'buildmon <command> -h' for command flags. All commands accept
-config pointing at a JSON config file; BUILDMON_* environment
variables override individual fields.
`, appName, appTagline)
}

// requireSession fails early for commands that cannot work logged out.
func (a *app) requireSession() error {
	if a.sessions.Token() == "" {
		return errNotLoggedIn
	}

	return nil
}
