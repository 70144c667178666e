// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for careerdesk.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdSend
	CmdLogs
	CmdHistory
	CmdStatus
	CmdStub
	CmdConfig
	CmdVersion
	CmdHelp
)

var commandNames = [...]string{
	CmdTUI:     "tui",
	CmdSend:    "send",
	CmdLogs:    "logs",
	CmdHistory: "history",
	CmdStatus:  "status",
	CmdStub:    "stub",
	CmdConfig:  "config",
	CmdVersion: "version",
	CmdHelp:    "help",
}

// String returns the command's name as typed.
func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	APIURL     string
	ConfigPath string
	Verbose    bool
	NoColor    bool
	JSON       bool

	// Command-specific
	Subcommand  string
	Name        string
	Email       string
	Subject     string
	Message     string
	MessageFile string
	HTMLPath    string
	Clear       bool
	Addr        string

	// Unknown is set when the command word was not recognized.
	Unknown string

	// Raw holds the arguments after the command word.
	Raw []string
}

// usageText is the help text for the CLI.
const usageText = `careerdesk - submit employer messages to the evaluation pipeline

USAGE:
    careerdesk [global flags] [command] [flags]

COMMANDS:
    tui                 Interactive client (default)
    send                Submit one message and print the verdict
    logs                Show the processing log
    history             Show conversation history
    status              Check that the evaluation service is reachable
    stub                Run the local stub evaluation service
    config              Show or create the configuration file
    version             Show version information
    help                Show this help

GLOBAL FLAGS:
    --api URL           Evaluation service base URL
    --config PATH       Configuration file (default ~/.careerdesk/config.toml)
    --json              Machine-readable output
    --no-color          Disable colors (NO_COLOR is also honored)
    -v, --verbose       Debug logging

SEND:
    careerdesk send --name NAME --email EMAIL --subject SUBJECT --message TEXT
        --message-file PATH    Read the message from a file ("-" for stdin)
        --html PATH            Also export the verdict as an HTML page
    Missing fields are prompted for when stdin is a terminal.
    Exits with status 2 when a required field is empty.

LOGS:
    careerdesk logs [--clear]

HISTORY:
    careerdesk history [--email EMAIL] [--clear]

STUB:
    careerdesk stub [--addr HOST:PORT]

CONFIG:
    careerdesk config show     Print the effective configuration
    careerdesk config path     Print the configuration file path
    careerdesk config init     Write a default configuration file

ENVIRONMENT:
    CAREERDESK_API_URL, CAREERDESK_TIMEOUT_SECS, CAREERDESK_LOG_LEVEL,
    CAREERDESK_LOG_FILE, CAREERDESK_TELEMETRY, CAREERDESK_STUB_ADDR
    A .env file in the working directory is loaded first.

Version: %s
`

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "careerdesk version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "send":
		parseSendArgs(&parsedArgs, remaining)
		return CmdSend, parsedArgs

	case "logs", "log":
		parseListArgs(&parsedArgs, remaining)
		return CmdLogs, parsedArgs

	case "history", "conversations":
		parseListArgs(&parsedArgs, remaining)
		return CmdHistory, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "stub", "serve":
		parseStubArgs(&parsedArgs, remaining)
		return CmdStub, parsedArgs

	case "config":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = strings.ToLower(remaining[0])
		}
		return CmdConfig, parsedArgs

	case "version", "--version", "-V":
		return CmdVersion, parsedArgs

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Unknown = cmd
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-color":
			parsedArgs.NoColor = true
		case "--api":
			if i+1 < len(args) {
				i++
				parsedArgs.APIURL = args[i]
			}
		case "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--api="):
				parsedArgs.APIURL = strings.TrimPrefix(arg, "--api=")
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

// parseSendArgs parses send command flags. Positional words after the
// flags form the message when --message is absent.
func parseSendArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining, "json")
	args.Name = p.Flag("name", "n")
	args.Email = p.Flag("email", "e")
	args.Subject = p.Flag("subject", "s")
	args.Message = p.Flag("message", "m")
	args.MessageFile = p.Flag("message-file", "f")
	args.HTMLPath = p.Flag("html")
	if p.BoolFlag("json") {
		args.JSON = true
	}
	if args.Message == "" && p.PositionalCount() > 0 {
		args.Message = strings.Join(p.PositionalFrom(0), " ")
	}
}

// parseListArgs parses the flags shared by logs and history.
func parseListArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining, "json", "clear")
	args.Email = p.Flag("email", "e")
	args.Clear = p.BoolFlag("clear")
	if p.BoolFlag("json") {
		args.JSON = true
	}
	args.Subcommand = p.Subcommand()
	if args.Subcommand == "clear" {
		args.Clear = true
	}
}

// parseStubArgs parses stub command flags.
func parseStubArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Addr = p.Flag("addr", "a")
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// Run executes every command except the TUI, which main owns.
func Run(ctx context.Context, cmd Command, args Args, env *Env) error {
	switch cmd {
	case CmdSend:
		return HandleSend(ctx, env, args)
	case CmdLogs:
		return HandleLogs(ctx, env, args)
	case CmdHistory:
		return HandleHistory(ctx, env, args)
	case CmdStatus:
		return HandleStatus(ctx, env, args)
	case CmdStub:
		return HandleStub(ctx, env, args)
	case CmdConfig:
		return HandleConfig(env, args)
	case CmdVersion:
		return HandleVersion(env, args)
	case CmdHelp:
		return HandleHelp(env, args)
	default:
		return fmt.Errorf("%s must be run by the interactive client", cmd)
	}
}

// HandleVersion handles the "version" command with JSON output support.
func HandleVersion(env *Env, args Args) error {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		return NewJSONResponse("version", data).Print(env.Out)
	}
	PrintVersion(env.Out)
	return nil
}

// HandleHelp prints usage. An unknown command word is a usage error.
func HandleHelp(env *Env, args Args) error {
	if args.Unknown != "" {
		PrintUsage(env.Err)
		return &ValidationError{
			Field:  "command",
			Value:  args.Unknown,
			Reason: "unknown command",
		}
	}
	PrintUsage(env.Out)
	return nil
}
