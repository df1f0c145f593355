// ABOUTME: Collaborators shared by the view controllers.
// ABOUTME: Persistence, navigation, clock, id generation and logging, all injectable.

package app

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harper/jot/internal/persist"
)

// Deps are injected into controllers. Zero-valued optional fields get defaults.
type Deps struct {
	Store     *persist.Adapter
	Navigator Navigator
	Now       func() time.Time
	NewID     func() string
	Logger    *log.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Navigator == nil {
		d.Navigator = NavigatorFunc(func(Location) {})
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return d
}
