package repository

import "testing"

func TestIsOwner(t *testing.T) {
	if !IsOwner(5, 5) {
		t.Fatal("owner denied access to own resource")
	}
	if IsOwner(5, 6) {
		t.Fatal("non-owner granted access")
	}
	if IsOwner(0, 0) != true {
		t.Fatal("identical zero identities should still match")
	}
}
