// Package main is the entry point for the jamkick application
package main

import (
	"github.com/jamkick/jamkick/cmd"
)

func main() {
	cmd.Execute()
}
