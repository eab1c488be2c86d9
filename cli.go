//go:build cli
// +build cli

package main

import (
	"kms.GO/cmd"
	"kms.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
