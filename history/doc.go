// Package history persists completed diagnostic runs to a local BadgerDB
// archive so successive runs against a misbehaving backend can be compared
// over time.
package history
