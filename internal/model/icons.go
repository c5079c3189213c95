package model

// Centralized icons for report and TUI rendering
// Using simple single-width characters for consistent terminal rendering
const (
	IconBusy    = "▲" // Tile with utilization above the busy threshold
	IconIdle    = "▽" // Tile with utilization below the idle threshold
	IconTile    = "■" // Regular tile
	IconGap     = "·" // Idle gap between tiles
	IconWarning = "!" // Advisory warning
	IconOK      = " " // Space (OK - no icon to reduce noise)
)

// Utilization thresholds used to pick an icon.
const (
	BusyThreshold = 0.75
	IdleThreshold = 0.10
)

// TileIcon picks the icon that matches a tile's utilization.
func TileIcon(utilization float64) string {
	switch {
	case utilization >= BusyThreshold:
		return IconBusy
	case utilization < IdleThreshold:
		return IconIdle
	default:
		return IconTile
	}
}
