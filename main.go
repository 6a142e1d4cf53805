// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "github.com/benchopt/results/cmd/benchsite"
)

func main() {
	cmd.Execute()
}
