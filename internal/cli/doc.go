// Package cli defines the stockcli commands on top of
// github.com/google/subcommands.
//
// Commands: export, digest, dump, check-config, version. Global flags
// -config and -dir select the configuration file and the base directory for
// relative paths. Exit codes follow subcommands.ExitStatus.
package cli
