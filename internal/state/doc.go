// Package state provides the editor's reducer driven state container.
//
// A Store holds one value. Actions are applied by a pure reducer; after
// each action the store notifies its listeners and, when given a bus,
// publishes a state.changed event. Reducers may not dispatch.
package state
