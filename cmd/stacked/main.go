// Package main provides the stacked CLI.
package main

import "github.com/mesh-intelligence/stacked/internal/cli"

func main() {
	cli.Execute()
}
