// SPDX-License-Identifier: MPL-2.0

// plugman is a CLI tool for enabling plugins distributed as .ez archives.
package main

import cmd "plugman-cli/cmd/plugman"

func main() {
	cmd.Execute()
}
