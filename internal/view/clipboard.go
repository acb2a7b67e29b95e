package view

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Mags/internal/game"
)

// copyLog puts the full event log on the system clipboard and returns a
// status line for the HUD.
func copyLog(log *game.EventLog) string {
	if log.Len() == 0 {
		return "event log empty"
	}
	if err := clipboard.WriteAll(log.Format()); err != nil {
		return fmt.Sprintf("copy failed: %v", err)
	}
	return fmt.Sprintf("copied %d events", log.Len())
}
