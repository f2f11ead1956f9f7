package services

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/envutil"
)

//go:embed routing.yaml
var defaultRoutingYAML []byte

type routingFile struct {
	Routes map[string]string `yaml:"routes"`
}

// RoutingTable maps an item type to the role whose queue its pending
// approvals are routed to. Loaded once at startup and read-only afterwards.
type RoutingTable struct {
	routes map[string]string
}

// LoadRoutingTable parses the embedded routing config, or the file named by
// APPROVAL_ROUTING_CONFIG when set. Every known item type must be routed to
// a valid role or loading fails.
func LoadRoutingTable() (*RoutingTable, error) {
	raw := defaultRoutingYAML
	if path := envutil.String("APPROVAL_ROUTING_CONFIG", ""); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read routing config %s: %w", path, err)
		}
		raw = b
	}

	var file routingFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse routing config: %w", err)
	}

	for _, itemType := range []string{
		domain.ItemTypeTrack,
		domain.ItemTypeNarratorRecording,
		domain.ItemTypeMixedTrack,
		domain.ItemTypeFinalMix,
	} {
		role, ok := file.Routes[itemType]
		if !ok {
			return nil, fmt.Errorf("routing config missing item type %q", itemType)
		}
		if !domain.ValidRole(role) {
			return nil, fmt.Errorf("routing config: item type %q routed to unknown role %q", itemType, role)
		}
	}
	for itemType := range file.Routes {
		if !domain.ValidItemType(itemType) {
			return nil, fmt.Errorf("routing config: unknown item type %q", itemType)
		}
	}

	return &RoutingTable{routes: file.Routes}, nil
}

// RoleFor returns the role reviewing the given item type.
func (t *RoutingTable) RoleFor(itemType string) (string, bool) {
	role, ok := t.routes[itemType]
	return role, ok
}

// CanDecide reports whether a user with the given role may decide approvals
// of the given item type. Admins may decide anything.
func (t *RoutingTable) CanDecide(role, itemType string) bool {
	if role == domain.RoleAdmin {
		return true
	}
	routed, ok := t.routes[itemType]
	return ok && routed == role
}
