// Command undofixdates reverts fixdates by moving every stored date back one day.
package main

import (
	"os"

	"freight-backoffice/internal/maintenance"
)

func main() {
	os.Exit(maintenance.RunCommand(maintenance.Backward))
}
