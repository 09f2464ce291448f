package core

import "testing"

type nopConn struct{}

func (nopConn) TrySend(Frame) error { return nil }
func (nopConn) Close()              {}

func TestRoom_AddRemove(t *testing.T) {
	r := NewRoom("x")
	if !r.Empty() {
		t.Fatalf("new room should be empty")
	}
	if !r.AddMember("a", nopConn{}) {
		t.Fatalf("first add should report new")
	}
	if r.AddMember("a", nopConn{}) {
		t.Fatalf("duplicate add should not report new")
	}
	r.AddMember("b", nopConn{})
	if r.MemberCount() != 2 {
		t.Fatalf("count = %d, want 2", r.MemberCount())
	}
	if !r.RemoveMember("a") {
		t.Fatalf("remove of present member should report true")
	}
	if r.RemoveMember("a") {
		t.Fatalf("remove of absent member should report false")
	}
	if r.Has("a") || !r.Has("b") {
		t.Fatalf("unexpected membership after remove")
	}
}

func TestRoom_SnapshotIsIndependent(t *testing.T) {
	r := NewRoom("x")
	r.AddMember("b", nopConn{})
	r.AddMember("a", nopConn{})

	snap := r.MembersSnapshot()
	r.RemoveMember("a")
	r.RemoveMember("b")

	if len(snap) != 2 {
		t.Fatalf("snapshot len = %d, want 2", len(snap))
	}
	if snap[0].ID != "a" || snap[1].ID != "b" {
		t.Fatalf("snapshot not ordered by id: %v", snap)
	}
	if info := r.Info(); info.Count != 0 || info.Name != "x" {
		t.Fatalf("info = %+v", info)
	}
}
