// Package viz renders dynamics results in the terminal.
//
//   - [FormatVector] and [FormatMatrix]: aligned numeric output for the CLI
//   - [PlotSweep]: asciigraph plot of joint torques along a coordinate sweep
//   - [Explorer]: Bubble Tea application to nudge q and v and watch the torques
//
// # Key Bindings
//
//	up/down    - Select coordinate
//	left/right - Nudge the selected position
//	[ ]        - Nudge the selected velocity
//	z          - Zero all velocities
//	n          - Reset to the neutral configuration
//	t          - Cycle color themes
//	q          - Quit
package viz
