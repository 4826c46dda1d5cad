// Package cmd wires up the CLI flags and dispatches to the chat core.
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"tcpchat/config"
	"tcpchat/internal/console"
	"tcpchat/internal/core"
	"tcpchat/internal/interrupt"
	"tcpchat/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X tcpchat/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs one chat session.  Only configuration
// and usage errors are returned; connection outcomes are reported on
// stdout.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg := config.Default()
	config.LoadFromEnv(cfg)
	envVerbose := cfg.Verbose

	fs := flag.NewFlagSet("tcpchat", flag.ContinueOnError)

	// ── role ─────────────────────────────────────────────────────
	fs.StringVarP(&cfg.Name, "name", "n", cfg.Name, "Display name (prompted for when omitted)")
	fs.BoolVarP(&cfg.Viewer, "viewer", "V", cfg.Viewer, "Join as a read-only viewer")

	// ── connection ───────────────────────────────────────────────
	fs.BoolVar(&cfg.NoDNS, "no-dns", cfg.NoDNS, "Numeric-only host, no DNS resolution")
	fs.DurationVar(&cfg.LivenessWait, "liveness-wait", cfg.LivenessWait, "How long a disconnect check waits")

	// ── SSH gateway ──────────────────────────────────────────────
	fs.StringVarP(&cfg.GatewaySpec, "gateway", "G", cfg.GatewaySpec, "Reach the server via SSH gateway [user@]host[:port]")
	fs.StringVar(&cfg.SSHKeyPath, "ssh-key", cfg.SSHKeyPath, "SSH private key file")
	fs.BoolVar(&cfg.SSHPassword, "ssh-password", cfg.SSHPassword, "Prompt for SSH password")
	fs.BoolVar(&cfg.UseSSHAgent, "ssh-agent", cfg.UseSSHAgent, "Use SSH agent")
	fs.BoolVar(&cfg.StrictHostKey, "strict-hostkey", cfg.StrictHostKey, "Verify SSH host keys")
	fs.StringVar(&cfg.KnownHostsPath, "known-hosts", cfg.KnownHostsPath, "Custom known_hosts path")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output")
	fs.BoolVar(&cfg.Stats, "stats", cfg.Stats, "Print session statistics to stderr on exit")

	var dryRun, showVersion, showHelp bool
	fs.BoolVar(&dryRun, "dry-run", false, "Validate the configuration and exit")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !fs.Changed("verbose") {
		cfg.Verbose = envVerbose
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Fprintf(stdout, "tcpchat %s\n", version)
		return nil
	}

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── gateway spec ─────────────────────────────────────────────
	if cfg.GatewaySpec != "" {
		user, host, port, err := config.ParseGatewaySpec(cfg.GatewaySpec)
		if err != nil {
			return fmt.Errorf("gateway: %w", err)
		}
		cfg.GatewayEnabled = true
		cfg.GatewayUser = user
		cfg.GatewayHost = host
		cfg.GatewayPort = port
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := util.NewLogger(cfg.Verbose)

	if dryRun {
		fmt.Fprintf(stdout, "%s → %s (config OK)\n",
			cfg.Role(), util.FormatAddr(cfg.Host, cfg.Port))
		if cfg.GatewayEnabled {
			fmt.Fprintf(stdout, "via gateway %s:%d\n", cfg.GatewayHost, cfg.GatewayPort)
		}
		return nil
	}

	// ── build components ─────────────────────────────────────────
	con := console.New(stdout, colorEnabled(stdout, cfg.NoColor))
	input := bufio.NewReader(stdin)

	if !cfg.Viewer && cfg.Name == "" {
		name, err := con.Ask("Enter a name to use: ", input)
		if err != nil {
			return fmt.Errorf("reading name: %w", err)
		}
		cfg.Name = name
	}

	sig := interrupt.New(ctx, con)
	if cfg.Viewer {
		stop := sig.Notify()
		defer stop()
	}

	mode, err := core.Build(cfg, logger, core.Env{
		Input:   input,
		Console: con,
		Signal:  sig,
		Stats:   os.Stderr,
	})
	if err != nil {
		return err
	}
	return mode.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

// parsePositional reads the optional [host] [port] arguments.
func parsePositional(cfg *config.Config, remaining []string) error {
	switch len(remaining) {
	case 0:
	case 1:
		cfg.Host = remaining[0]
	case 2:
		cfg.Host = remaining[0]
		port, err := config.ParsePort(remaining[1])
		if err != nil {
			return fmt.Errorf("port: %w", err)
		}
		cfg.Port = port
	default:
		return fmt.Errorf("too many arguments (use --help for usage)")
	}
	return nil
}

// colorEnabled reports whether styled output suits w.
func colorEnabled(w io.Writer, noColor bool) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return console.Detect(f, noColor)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tcpchat – TCP chat client v%s

Talk on a line-based chat server as a messenger, or watch it as a viewer.

Usage:
  tcpchat [options] [host] [port]             Chat (prompts for a name)
  tcpchat -V [options] [host] [port]          View broadcasts
  tcpchat -G user@gateway [host] [port]       Chat through an SSH gateway

The server defaults to %s:%d.

Options:
`, version, config.DefaultHost, config.DefaultPort)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  tcpchat -n Alice                            Chat on localhost:6000
  tcpchat -n Bob chat.example.com 6000        Chat on a remote server
  tcpchat -V 10.0.0.5                         Watch the chat
  tcpchat -G admin@bastion -n Carol chatbox   Chat via a bastion host
  TCPCHAT_VIEWER=1 tcpchat                    Role from the environment
`)
}
