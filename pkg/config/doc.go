// Package config loads implx configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. a config file in the user config directory
//  3. a config file in the working directory
//  4. an explicit file given with --config
//  5. IMPLX_ environment variables (IMPLX_OUTPUT_FORMAT=json)
//  6. overrides set by command-line flags
//
// Config files are named .implx.toml, implx.toml, .implx.yaml or
// implx.yaml; only the first one found in a directory is read.
//
// The result is validated before it is returned, so callers can use it
// without checking modes and format names again.
package config
