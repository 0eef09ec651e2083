// Package config loads hl's CLI configuration (SPEC_FULL §4.12, A2):
// embedded defaults, an optional TOML/YAML/JSON file, `HL_*` environment
// variables, and `pflag` command-line flags, layered in that order with
// later layers winning. The shape mirrors the teacher's
// internal/debuglog.Config and internal/profile.Config: a Flags struct of
// flag names, a Config struct of resolved values, RegisterFlags, and
// (here) LoadFile and ApplyEnv, which layer the file and the environment
// over the registered flag defaults before the command line is parsed.
package config
