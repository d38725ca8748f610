package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Collect trait implementors from documentation fragments"
	MsgLoadShort       = "Run fragments through the handoff and print the index"
	MsgWhoShort        = "List the implementors of one trait"
	MsgInspectShort    = "Show how each entry of a fragment file is read"
	MsgMetricsShort    = "Run fragments and print handoff metrics"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigSource   = "# loaded from %s\n"
	MsgVersionFormat  = "implx version %s\n  commit: %s\n  built:  %s\n"
	MsgInspectTrait   = "%s (%s, %s)\n"
	MsgInspectLibrary = "\n%s:\n"
	MsgInspectEntry   = "  %s\n"
	MsgInspectField   = "    %-8s %s\n"
	MsgInspectLink    = "    link     %s %s -> %s\n"
	MsgInspectInvalid = "    invalid: %v\n"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig       = "Config file (default: implx.toml in the config dir and working dir)"
	MsgFlagFormat       = "Output format: text, markdown, json, yaml or toml"
	MsgFlagNoColor      = "Disable colored output"
	MsgFlagMode         = "Handoff mode: slot (last write wins) or queue"
	MsgFlagInstallAfter = "Install the index after this many fragments (-1 never)"
	MsgFlagNoDrain      = "Do not forward deliveries parked before installation"
	MsgFlagSkip         = "Library whose implementors the page already renders"
	MsgFlagReport       = "Include the session report"
	MsgFlagDefaults     = "Print the built-in defaults instead"
)

// Long messages
const (
	MsgRootLong = `implx plays back the registration of trait implementors in a documentation
viewer. Each fragment file carries the implementors of one trait; fragments
hand their data to the index through a handoff that parks deliveries made
before the index is installed.

Fragments are read from the configured fragments directory or from the
paths given on the command line (.json, .yaml, .toml and rustdoc .js).`

	MsgLoadLong = `Load runs every fragment in order, installs the index after
--install-after fragments and prints the resulting index. With the default
"slot" mode only the last delivery made before installation survives; use
--report to see which traits were lost.`

	MsgWhoLong = `Who prints the implementors indexed for one trait, for example:

  implx who core::ops::BitXor`

	MsgInspectLong = `Inspect decodes fragment files without running them and shows the parsed
form of every entry: plain text, implemented trait, target type, generics
and links.`
)

var (
	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
