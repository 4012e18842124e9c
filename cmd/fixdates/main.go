// Command fixdates moves every stored shipment and invoice date forward one day.
package main

import (
	"os"

	"freight-backoffice/internal/maintenance"
)

func main() {
	os.Exit(maintenance.RunCommand(maintenance.Forward))
}
