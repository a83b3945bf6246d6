package daemon

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the role a daemon plays in the cluster.
type Kind string

const (
	KindMDS Kind = "mds"
	KindOSD Kind = "osd"
)

// Valid reports whether k names a known daemon kind.
func (k Kind) Valid() bool { return k == KindMDS || k == KindOSD }

// Binary returns the daemon's executable name.
func (k Kind) Binary() string { return "fish" + string(k) }

// Daemon describes one configured cluster daemon. Instances are built
// from the cluster configuration, never mutated, and discarded after use.
type Daemon struct {
	Kind       Kind   `json:"kind"`
	ID         int    `json:"id"`
	Host       string `json:"host"`
	Port       int    `json:"port,omitempty"`
	User       string `json:"user,omitempty"`
	PIDFile    string `json:"pidfile"`
	BinaryPath string `json:"binary_path"`
	ConfFile   string `json:"conf_file"`
}

// Name returns the daemon's cluster-unique name, e.g. "mds.0".
func (d Daemon) Name() string { return fmt.Sprintf("%s.%d", d.Kind, d.ID) }

// StartCommand builds the command line that launches this daemon on its host.
func (d Daemon) StartCommand() string {
	return d.BinaryPath + " -c " + d.ConfFile
}

// Local reports whether the daemon runs on the host fishadm itself runs on.
func (d Daemon) Local() bool {
	return d.Host == "" || d.Host == "localhost" || d.Host == "127.0.0.1"
}

// Describe renders the descriptor as a single JSON line for log output.
func (d Daemon) Describe() string {
	b, err := json.Marshal(d)
	if err != nil {
		return d.Name()
	}
	return string(b)
}
