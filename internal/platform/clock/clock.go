// Package clock provides the production Clock implementation. Services
// take "now" as a parameter; only the composition root touches this.
package clock

import "time"

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }
