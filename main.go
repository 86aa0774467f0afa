// Package main is the entry point for the zapp application.
package main

import (
	"github.com/samber/lo"
	"github.com/zapp-cli/zapp/cmd"
	"github.com/zapp-cli/zapp/config"
	"github.com/zapp-cli/zapp/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
