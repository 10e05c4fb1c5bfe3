//go:build !novadebug

package game

func invariant(bool, string, ...any) {}
