// Package dedupe provides shared singleflight groups used to collapse
// concurrent identical requests into one unit of work while the other
// callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

// StatsGroup deduplicates catalog statistics computations. Every caller uses
// the same key because the result does not depend on the request.
var StatsGroup singleflight.Group

// LoginGroup deduplicates Google sign-ins keyed by e-mail, so a burst of
// first logins for one account creates a single trainer.
var LoginGroup singleflight.Group

// Key prefixes used with the groups above.
const (
	KeyCatalogStatistics = "catalog:statistics"
	KeyLoginPrefix       = "login:"
)
