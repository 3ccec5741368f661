// Command game plays kickback command scripts against an event journal.
package main

import (
	gamecmd "github.com/louisbranch/kickback/internal/cmd/game"
	entrypoint "github.com/louisbranch/kickback/internal/platform/cmd"
)

func main() {
	entrypoint.Main(entrypoint.ServiceGame, gamecmd.ParseConfig, gamecmd.Run)
}
