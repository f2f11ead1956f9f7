package services

import (
	"testing"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
)

func TestLoadRoutingTableDefaults(t *testing.T) {
	table, err := LoadRoutingTable()
	if err != nil {
		t.Fatalf("LoadRoutingTable: %v", err)
	}

	for _, itemType := range []string{
		domain.ItemTypeTrack,
		domain.ItemTypeNarratorRecording,
		domain.ItemTypeMixedTrack,
		domain.ItemTypeFinalMix,
	} {
		role, ok := table.RoleFor(itemType)
		if !ok {
			t.Fatalf("RoleFor(%q): not routed", itemType)
		}
		if role != domain.RoleApprover {
			t.Fatalf("RoleFor(%q) = %q, want %q", itemType, role, domain.RoleApprover)
		}
	}

	if _, ok := table.RoleFor("session"); ok {
		t.Fatal("RoleFor must reject unrouted item types")
	}
}

func TestRoutingTableCanDecide(t *testing.T) {
	table, err := LoadRoutingTable()
	if err != nil {
		t.Fatalf("LoadRoutingTable: %v", err)
	}

	cases := []struct {
		role     string
		itemType string
		want     bool
	}{
		{domain.RoleApprover, domain.ItemTypeTrack, true},
		{domain.RoleAdmin, domain.ItemTypeTrack, true},
		{domain.RoleAdmin, domain.ItemTypeFinalMix, true},
		{domain.RoleMixer, domain.ItemTypeTrack, false},
		{domain.RolePerformer, domain.ItemTypeMixedTrack, false},
		{domain.RoleApprover, "unknown", false},
	}
	for _, tc := range cases {
		if got := table.CanDecide(tc.role, tc.itemType); got != tc.want {
			t.Errorf("CanDecide(%q, %q) = %v, want %v", tc.role, tc.itemType, got, tc.want)
		}
	}
}
