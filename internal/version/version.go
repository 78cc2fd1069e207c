// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Accumulated rotation state, spin HUD readout, ephemeris watch mode
// 0.2.0 - Orbit curve sampling, starfield backdrop, scale modes, focus/zoom/pan
// 0.1.0 - Initial release: time authority, Kepler solver, planet table, TUI
