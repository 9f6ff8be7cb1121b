//go:build !ebiten

package ui

import "lifeworld/internal/world"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(*world.World, int) *HUD { return nil }

// Width is zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int) {}
