// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for plugman.
//
// This package implements the Cobra command hierarchy for the plugman CLI:
// the root command plus subcommands for enabling plugins, listing the
// catalog, and inspecting individual plugins.
package cmd
