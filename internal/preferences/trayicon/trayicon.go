// Package trayicon contributes the "tray icon color" preference.
//
// TrayIconColor declares one configuration node and hands it to the host's
// configuration registry during startup. It keeps no state of its own:
// every Init builds the node afresh and submits it, and whatever the
// registry returns is returned to the caller untouched.
package trayicon

import (
	"context"
	"errors"
	"reflect"

	"github.com/dshills/trayprefs/internal/config/schema"
)

// Identifiers of the contributed node and its property. Other subsystems
// read the preference by PropertyKey.
const (
	NodeID      = "preferences.trayiconcolor"
	PropertyKey = "preferences.TrayIconColor"

	nodeTitle           = "Tray Icon Color"
	propertyDescription = "Force the tray icon color to be light or dark. (Requires restart)"
)

// ErrNoRegistry is returned by Init when the registrar was built with a nil
// registry, including a typed nil pointer.
var ErrNoRegistry = errors.New("trayicon: no configuration registry")

// Registry is the registration capability the registrar consumes.
type Registry interface {
	RegisterConfigurations(ctx context.Context, nodes []schema.Node) error
}

// TrayIconColor registers the tray icon color preference.
type TrayIconColor struct {
	registry Registry
}

// New creates a registrar submitting to registry.
func New(registry Registry) *TrayIconColor {
	return &TrayIconColor{registry: registry}
}

// Name identifies the registrar in startup logs and errors.
func (t *TrayIconColor) Name() string {
	return "tray icon color"
}

// Init submits the tray icon color node to the registry once.
// Calling Init again submits the same node again.
func (t *TrayIconColor) Init(ctx context.Context) error {
	if isNil(t.registry) {
		return ErrNoRegistry
	}
	return t.registry.RegisterConfigurations(ctx, []schema.Node{ConfigurationNode()})
}

// ConfigurationNode returns the node contributed by TrayIconColor.
// Each call builds a new value.
func ConfigurationNode() schema.Node {
	return schema.NewNode(NodeID).
		Title(nodeTitle).
		Property(PropertyKey, schema.StringEnum(
			string(ColorDefault),
			string(ColorLight),
			string(ColorDark),
		).
			Description(propertyDescription).
			Default(string(ColorDefault)).
			Build()).
		Build()
}

func isNil(r Registry) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
