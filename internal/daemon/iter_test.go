package daemon

import "testing"

func clusterOf(t *testing.T) []Daemon {
	t.Helper()
	return []Daemon{
		{Kind: KindMDS, ID: 0, Host: "a"},
		{Kind: KindMDS, ID: 1, Host: "b"},
		{Kind: KindOSD, ID: 0, Host: "c"},
		{Kind: KindOSD, ID: 1, Host: "d"},
	}
}

func drain(it *Iter) []Daemon {
	var out []Daemon
	for d, ok := it.Next(); ok; d, ok = it.Next() {
		out = append(out, d)
	}
	return out
}

func TestIterVisitsAllInOrder(t *testing.T) {
	ds := clusterOf(t)
	got := drain(NewIter(ds, nil))
	if len(got) != len(ds) {
		t.Fatalf("expected %d daemons, got %d", len(ds), len(got))
	}
	for i := range ds {
		if got[i].Name() != ds[i].Name() {
			t.Fatalf("order mismatch at %d: %s vs %s", i, got[i].Name(), ds[i].Name())
		}
	}
}

func TestIterEmpty(t *testing.T) {
	if got := drain(NewIter(nil, nil)); len(got) != 0 {
		t.Fatalf("empty cluster must yield nothing, got %d", len(got))
	}
}

func TestIterOneShot(t *testing.T) {
	it := NewIter(clusterOf(t), nil)
	_ = drain(it)
	if _, ok := it.Next(); ok {
		t.Fatalf("exhausted iterator must stay exhausted")
	}
}

func TestSelectorKind(t *testing.T) {
	got := drain(NewIter(clusterOf(t), &Selector{Kind: KindOSD}))
	if len(got) != 2 {
		t.Fatalf("expected 2 osds, got %d", len(got))
	}
	for _, d := range got {
		if d.Kind != KindOSD {
			t.Fatalf("selector leaked %s", d.Name())
		}
	}
}

func TestSelectorKindAndID(t *testing.T) {
	got := drain(NewIter(clusterOf(t), &Selector{Kind: KindMDS, ID: 1, HasID: true}))
	if len(got) != 1 || got[0].Name() != "mds.1" {
		t.Fatalf("expected exactly mds.1, got %v", got)
	}
}

func TestSelectorIDAcrossKinds(t *testing.T) {
	// id alone matches one daemon per kind
	got := drain(NewIter(clusterOf(t), &Selector{ID: 0, HasID: true}))
	if len(got) != 2 {
		t.Fatalf("expected mds.0 and osd.0, got %v", got)
	}
}
