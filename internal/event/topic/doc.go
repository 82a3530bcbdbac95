// Package topic provides hierarchical topic names for the editor event bus.
//
// Topics use dot notation. Single segment topics are valid:
//
//	format
//	selection.start
//	state.changed
//
// Subscriptions may use wildcards. "*" matches exactly one segment and
// "**" matches zero or more:
//
//	selection.*   matches selection.start and selection.end
//	**            matches everything
package topic
