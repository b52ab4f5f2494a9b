package app

import (
	"github.com/dshills/trayprefs/internal/preferences/trayicon"
)

// DefaultInitializers returns the built-in preference contributors, in
// registration order.
func DefaultInitializers(reg trayicon.Registry) []Initializable {
	return []Initializable{
		trayicon.New(reg),
	}
}
