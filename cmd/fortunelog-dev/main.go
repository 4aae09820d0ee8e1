// Package main provides the fortunelog-dev CLI.
package main

import "github.com/fortunelog/fortunelog-dev/internal/cli"

func main() {
	cli.Execute()
}
