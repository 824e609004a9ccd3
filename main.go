// Package main is the entry point for the filegrab CLI.
package main

import "filegrab.dev/pkg/filegrab/cmd"

func main() {
	cmd.Execute()
}
