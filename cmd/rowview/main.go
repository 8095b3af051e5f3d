package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"github.com/Akashdeep-Patra/rowview/internal/app"
	"github.com/Akashdeep-Patra/rowview/internal/config"
	"github.com/Akashdeep-Patra/rowview/internal/logging"
	"github.com/Akashdeep-Patra/rowview/internal/watcher"
	"github.com/Masterminds/semver/v3"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// A TUI spends most of its time waiting on terminal input and
	// directory listings. Two OS threads are plenty unless the user says
	// otherwise.
	if os.Getenv("GOMAXPROCS") == "" {
		maxProcs := 2
		if n := runtime.NumCPU(); n < maxProcs {
			maxProcs = n
		}
		runtime.GOMAXPROCS(maxProcs)
	}

	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rowview:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rowview",
		Short: "A mouse-friendly terminal file tree",
		Long: `rowview lists a directory as an expandable tree in the terminal.

Rows can be selected with the keyboard or the mouse: click, shift+click
for a range, ctrl+click to toggle, and drag past the edge to scroll.`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"rowview %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.PersistentFlags().String("config", "", "Path to a config file")
	rootCmd.Flags().StringP("path", "p", ".", "Directory to show")

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildConfigCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	return rootCmd
}

// versionInfo is the `rowview version --json` document.
type versionInfo struct {
	Version    string `json:"version"`
	Major      uint64 `json:"major,omitempty"`
	Minor      uint64 `json:"minor,omitempty"`
	Patch      uint64 `json:"patch,omitempty"`
	Prerelease string `json:"prerelease,omitempty"`
	Commit     string `json:"commit"`
	Date       string `json:"date"`
	Go         string `json:"go"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
}

func newVersionInfo(v string) versionInfo {
	info := versionInfo{
		Version: v,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	// "dev" builds carry no semantic version.
	if sv, err := semver.NewVersion(v); err == nil {
		info.Major = sv.Major()
		info.Minor = sv.Minor()
		info.Patch = sv.Patch()
		info.Prerelease = sv.Prerelease()
	}
	return info
}

// buildVersionCmd creates the `rowview version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeVersion(cmd.OutOrStdout(), newVersionInfo(version), jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")
	return cmd
}

func writeVersion(w io.Writer, info versionInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	_, err := fmt.Fprintf(w, "rowview %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		info.Version, info.Commit, info.Date, info.Go, info.OS, info.Arch)
	return err
}

// buildConfigCmd creates the `rowview config` subcommand that prints the
// resolved configuration.
func buildConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return writeConfig(cmd.OutOrStdout(), cfg)
		},
	}
}

func writeConfig(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// buildCompletionCmd creates the `rowview completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rowview.

Examples:
  # Bash (add to ~/.bashrc)
  rowview completion bash > /etc/bash_completion.d/rowview

  # Zsh (add to ~/.zshrc before compinit)
  rowview completion zsh > "${fpath[1]}/_rowview"

  # Fish
  rowview completion fish > ~/.config/fish/completions/rowview.fish

  # PowerShell
  rowview completion powershell > rowview.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}

// resolveRoot returns the absolute directory to show.
func resolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	path, _ := cmd.Flags().GetString("path")
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	root, err := resolveRoot(path)
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		// Keep going without a log; the terminal belongs to the UI.
		fmt.Fprintln(os.Stderr, "rowview: logging disabled:", err)
	}
	defer logging.Close()

	logging.SetSession(ulid.Make().String())
	log := logging.Component("main")
	log.Info().Str("root", root).Str("version", version).Msg("start")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model, err := app.New(app.Options{
		Root:    root,
		Config:  cfg,
		Context: ctx,
		Logger:  logging.Get(),
	})
	if err != nil {
		return err
	}

	// Only the root and expanded directories are watched.
	var events <-chan watcher.Event
	if cfg.Watch {
		w, watchErr := watcher.New(cfg.WatchDebounce)
		if watchErr != nil {
			log.Warn().Err(watchErr).Msg("filesystem watcher unavailable")
		} else {
			defer w.Close()
			model.SetWatcher(w)
			events = w.Events()
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if events != nil {
		go func() {
			for ev := range events {
				p.Send(ev)
			}
		}()
	}

	_, err = p.Run()
	log.Info().Err(err).Msg("exit")
	return err
}
