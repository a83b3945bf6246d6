package main

import (
	"fmt"

	"fishadm/internal/daemon"
)

// GlobalFlags holds the persistent flags shared by all subcommands.
type GlobalFlags struct {
	ClusterConfig string
}

// SelectorFlags narrows an operation to part of the cluster.
type SelectorFlags struct {
	Kind string
	ID   int // -1 means any
}

// Selector converts the flags into a daemon selector; nil means all.
func (f SelectorFlags) Selector() (*daemon.Selector, error) {
	if f.Kind == "" && f.ID < 0 {
		return nil, nil
	}
	sel := &daemon.Selector{}
	if f.Kind != "" {
		k := daemon.Kind(f.Kind)
		if !k.Valid() {
			return nil, fmt.Errorf("unknown daemon kind %q (want mds or osd)", f.Kind)
		}
		sel.Kind = k
	}
	if f.ID >= 0 {
		sel.ID = f.ID
		sel.HasID = true
	}
	return sel, nil
}

// ServeFlags holds overrides for the serve subcommand.
type ServeFlags struct {
	Listen   string
	BasePath string
}
