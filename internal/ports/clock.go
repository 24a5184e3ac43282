package ports

import "time"

// Clock supplies "now" so scoring and window checks stay deterministic
// in tests. The services never read the system clock directly.
type Clock interface {
	Now() time.Time
}
