package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/camctl/internal/camview"
	"github.com/muurk/camctl/internal/config"
	"github.com/muurk/camctl/internal/directory"
	"github.com/muurk/camctl/internal/filter"
	"github.com/muurk/camctl/internal/logging"
	"github.com/muurk/camctl/internal/tui"
	"github.com/muurk/camctl/internal/ui"
)

// Global flags, applied over the config file and environment
var (
	baseURL     string
	timeoutSecs int
	logLevel    string
)

// list flags
var (
	locationFilter string
	statusFilter   string
	searchFilter   string
	page           int
	pageSize       int
	outputFormat   string
	listAll        bool
)

var (
	assumeYes  bool
	forceInit  bool
	currentCfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Directory API base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&timeoutSecs, "timeout", 0, "Request timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(setStatusCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads configuration and starts logging before any command runs.
// Precedence is flags, then environment, then the config file.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Load returns a shared value; keep flag overrides local
	c := *cfg
	api := *cfg.API
	prefs := *cfg.Preferences
	c.API, c.Preferences = &api, &prefs

	// .env may carry CAMCTL_* overrides as well as the token
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if err := c.ApplyEnv(); err != nil {
		return err
	}
	if baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if timeoutSecs != 0 {
		c.API.TimeoutSeconds = timeoutSecs
	}
	if logLevel != "" {
		c.Preferences.LogLevel = logLevel
	}

	if err := logging.Initialize(c.Preferences.LogLevel); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Debug("configuration loaded",
		zap.String("base_url", c.API.BaseURL),
		zap.Int("timeout_seconds", c.API.TimeoutSeconds),
		zap.String("dotenv", config.DotEnvPath()))

	currentCfg = &c
	return nil
}

// newDirectory builds the API client from the active configuration
func newDirectory() (*directory.Client, error) {
	token, err := currentCfg.ResolveToken()
	if err != nil {
		return nil, err
	}
	client := directory.NewClient(currentCfg.API.BaseURL, token)
	client.SetTimeout(currentCfg.Timeout())
	client.SetPaths(currentCfg.API.FetchPath, currentCfg.API.UpdatePath)
	return client, nil
}

// tuiCmd launches the interactive browser
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive camera browser",
	Long: `Launch an interactive TUI for browsing the camera directory.

The browser provides:
- A paged table of cameras with coloured status chips
- Search, location and status filters applied as you type
- An "Update Status" dialog to switch a camera between Active and Inactive

This is the default when camctl runs without a command.`,
	Example: `  # Launch the browser
  camctl tui
  # Or simply:
  camctl

  # Log to a file while browsing
  CAMCTL_LOG_FILE=camctl.log camctl --log-level debug`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	client, err := newBrowserDirectory()
	if err != nil {
		return err
	}

	store := camview.NewStoreWithPageSize(currentCfg.Preferences.PageSize)
	if err := tui.Run(cmd.Context(), client, store); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}

// newBrowserDirectory silences stderr logging before building the client,
// which captures the logger for its HTTP transport. The browser owns the
// terminal, so only file logging is kept.
func newBrowserDirectory() (*directory.Client, error) {
	if os.Getenv(logging.LogFileEnvVar) == "" {
		logging.SetLogger(zap.NewNop())
	}
	return newDirectory()
}

// listCmd prints the device table
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cameras",
	Long: `Fetch the camera directory and print one page of it.

Filters combine: a camera is listed only when it matches every filter
given. Location and search match case-insensitive substrings; status
must be Active or Inactive.`,
	Example: `  # First page with the configured page size
  camctl list

  # Inactive cameras at one site
  camctl list --location warehouse --status inactive

  # Every matching camera as JSON for scripting
  camctl list --search gate --all --format json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&locationFilter, "location", "", "Filter by location (substring)")
	listCmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status (Active or Inactive)")
	listCmd.Flags().StringVar(&searchFilter, "search", "", "Search name, location and recorder")
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page (10, 20, 50 or 100)")
	listCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, compact, json)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Print every page")
}

func runList(cmd *cobra.Command, args []string) error {
	if statusFilter != "" {
		if _, err := directory.ParseStatus(statusFilter); err != nil {
			return err
		}
	}
	switch outputFormat {
	case "table", "compact", "json":
	default:
		return fmt.Errorf("unknown format %q (want table, compact or json)", outputFormat)
	}

	client, err := newDirectory()
	if err != nil {
		return err
	}

	store := camview.NewStoreWithPageSize(currentCfg.Preferences.PageSize)
	ctrl := camview.NewController(client, store)

	p := ui.NewPrinter(cmd.OutOrStdout())
	if err := ctrl.Load(cmd.Context()); err != nil {
		if outputFormat != "json" {
			p.PrintError("Failed to fetch data", err)
		}
		return errors.New(store.Load().Message)
	}

	if pageSize != 0 {
		if err := store.SetPageSize(pageSize); err != nil {
			return err
		}
	}
	store.SetCriteria(filter.Criteria{
		Location: locationFilter,
		Status:   statusFilter,
		Search:   searchFilter,
	})
	store.SetPage(page)

	if outputFormat == "json" {
		return printJSON(p, store)
	}

	if outputFormat == "table" {
		p.PrintHeader("Cameras", "camctl "+strings.Join(os.Args[1:], " "), listParams()...)
	}

	first, last := store.Paging().Page, store.Paging().Page
	if listAll {
		first, last = 1, max(store.Screen().Window.TotalPages, 1)
	}
	for n := first; n <= last; n++ {
		store.SetPage(n)
		sc := store.Screen()
		if outputFormat == "compact" {
			_, _ = fmt.Fprint(p.Writer(), ui.RenderCompact(sc, ui.IsTerminal()))
		} else {
			p.PrintTable(sc)
		}
	}
	return nil
}

func listParams() []ui.Param {
	params := []ui.Param{{Key: "API", Value: currentCfg.API.BaseURL}}
	for _, f := range []struct{ key, value string }{
		{"Location", locationFilter},
		{"Status", statusFilter},
		{"Search", searchFilter},
	} {
		if f.value != "" {
			params = append(params, ui.Param{Key: f.key, Value: f.value})
		}
	}
	return params
}

type listJSON struct {
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
	Total      int                  `json:"total"`
	Devices    directory.Collection `json:"devices"`
}

func printJSON(p *ui.Printer, store *camview.Store) error {
	devices, w := store.Visible()
	out := listJSON{
		Page:       w.Page,
		PageSize:   w.Size,
		TotalPages: w.TotalPages,
		Total:      w.Total,
		Devices:    devices,
	}
	if listAll {
		out.Page, out.TotalPages, out.Devices = 1, 1, store.Filtered()
		out.PageSize = len(out.Devices)
	}
	if out.Devices == nil {
		out.Devices = directory.Collection{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	p.Println(string(data))
	return nil
}

// setStatusCmd changes one camera's status
var setStatusCmd = &cobra.Command{
	Use:   "set-status <camera-id> <active|inactive>",
	Short: "Set a camera's status",
	Long: `Switch a camera between Active and Inactive.

The directory is fetched first so the camera can be shown before the
change is sent. You are asked to confirm unless --yes is given. After
the update the directory is fetched again and the new state printed.`,
	Example: `  # Deactivate camera 42 after confirming
  camctl set-status 42 inactive

  # Activate without prompting
  camctl set-status 42 active --yes`,
	Args: cobra.ExactArgs(2),
	RunE: runSetStatus,
}

func init() {
	setStatusCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runSetStatus(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	status, err := directory.ParseStatus(args[1])
	if err != nil {
		return err
	}

	client, err := newDirectory()
	if err != nil {
		return err
	}

	ctrl := camview.NewController(client, nil)
	p := ui.NewPrinter(cmd.OutOrStdout())

	if err := ctrl.Load(cmd.Context()); err != nil {
		p.PrintError("Failed to fetch data", err)
		return errors.New(ctrl.Store.Load().Message)
	}

	device, ok := ctrl.Store.Devices().Find(id)
	if !ok {
		return fmt.Errorf("%w: %q", camview.ErrUnknownDevice, id)
	}
	if device.Status.EqualFold(status) {
		p.PrintSuccess("No change needed",
			ui.Detail{Key: "Camera", Value: deviceLabel(device)},
			ui.Detail{Key: "Status", Value: camview.StatusLabel(device.Status)})
		return nil
	}

	if !assumeYes {
		confirmed := p.ConfirmChange(cmd.InOrStdin(), "Update Status",
			ui.Detail{Key: "Camera", Value: deviceLabel(device)},
			ui.Detail{Key: "Current", Value: camview.StatusLabel(device.Status)},
			ui.Detail{Key: "New", Value: string(status)})
		if !confirmed {
			return nil
		}
	}

	updated, err := ctrl.SetStatus(cmd.Context(), id, status)
	refetchFailed := errors.Is(err, camview.ErrRefetchFailed)
	if err != nil && !refetchFailed {
		p.PrintError("Failed to update status", err)
		if notice := ctrl.Store.Notice(); notice != "" {
			return errors.New(notice)
		}
		return err
	}

	p.PrintSuccess("Status updated",
		ui.Detail{Key: "Camera", Value: deviceLabel(updated)},
		ui.Detail{Key: "Location", Value: updated.Location},
		ui.Detail{Key: "Status", Value: camview.StatusLabel(updated.Status)})

	if refetchFailed {
		// The change is applied; only the confirming reload failed
		p.PrintError("Failed to fetch data", err)
		return errors.New(ctrl.Store.Load().Message)
	}
	return nil
}

func deviceLabel(d directory.Device) string {
	if d.Name == "" {
		return d.ID
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.ID)
}

// configCmd groups the configuration file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Show or create the camctl configuration file.

The file holds the API base URL, request paths, timeout and display
preferences. The API token is never written to it.`,
}

// skipSetup lets a command run with a missing or broken config file
func skipSetup(cmd *cobra.Command, args []string) error {
	return logging.Initialize(logLevel)
}

var configPathCmd = &cobra.Command{
	Use:               "path",
	Short:             "Print the configuration file path",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after environment variables and flags are
applied, followed by where the API token comes from.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := currentCfg.Marshal()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		_, _ = out.Write(data)

		token := "set"
		if _, err := currentCfg.ResolveToken(); err != nil {
			token = "missing"
		}
		fmt.Fprintf(out, "\n# token (%s): %s\n", currentCfg.API.TokenEnv, token)
		if path := config.DotEnvPath(); path != "" {
			fmt.Fprintf(out, "# .env: %s\n", path)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:               "init",
	Short:             "Write a default configuration file",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Init(forceInit)
		if err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Configuration written",
			ui.Detail{Key: "Path", Value: path})
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
