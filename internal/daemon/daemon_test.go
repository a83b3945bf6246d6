package daemon

import (
	"encoding/json"
	"testing"
)

func TestKindValidAndBinary(t *testing.T) {
	if !KindMDS.Valid() || !KindOSD.Valid() {
		t.Fatalf("mds/osd must be valid kinds")
	}
	if Kind("mon").Valid() {
		t.Fatalf("unknown kind must not validate")
	}
	if KindMDS.Binary() != "fishmds" || KindOSD.Binary() != "fishosd" {
		t.Fatalf("unexpected binary names: %q %q", KindMDS.Binary(), KindOSD.Binary())
	}
}

func TestDaemonNameAndStartCommand(t *testing.T) {
	d := Daemon{
		Kind:       KindOSD,
		ID:         3,
		Host:       "osd3.example.com",
		PIDFile:    "/var/run/fishd/fishosd.3.pid",
		BinaryPath: "/opt/fishd/usr/bin/fishosd",
		ConfFile:   "/etc/fishd/fishd.conf",
	}
	if d.Name() != "osd.3" {
		t.Fatalf("Name mismatch: %q", d.Name())
	}
	want := "/opt/fishd/usr/bin/fishosd -c /etc/fishd/fishd.conf"
	if d.StartCommand() != want {
		t.Fatalf("StartCommand mismatch: %q", d.StartCommand())
	}
}

func TestDaemonLocal(t *testing.T) {
	for _, host := range []string{"", "localhost", "127.0.0.1"} {
		if !(Daemon{Host: host}).Local() {
			t.Fatalf("host %q should be local", host)
		}
	}
	if (Daemon{Host: "mds0.example.com"}).Local() {
		t.Fatalf("remote host should not be local")
	}
}

func TestDescribeIsJSON(t *testing.T) {
	d := Daemon{Kind: KindMDS, ID: 0, Host: "mds0"}
	var back Daemon
	if err := json.Unmarshal([]byte(d.Describe()), &back); err != nil {
		t.Fatalf("Describe must render JSON: %v", err)
	}
	if back.Kind != KindMDS || back.Host != "mds0" {
		t.Fatalf("Describe lost fields: %+v", back)
	}
}
