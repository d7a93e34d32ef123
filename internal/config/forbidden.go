// Package config holds depfix's built-in default tables: the
// forbidden-targets map and nothing else so far. Everything else
// (index table, editor path, bind address) comes from flags or the
// environment.
package config

import "github.com/distr1/depfix/internal/resolve"

// DefaultForbidden is the built-in forbidden-targets map: rule kinds
// that implicitly already depend on their own runtime, so the resolver
// must never propose re-adding it explicitly.
func DefaultForbidden() resolve.Forbidden {
	return resolve.Forbidden{
		"scala_library": {
			"@third_party_jvm//3rdparty/jvm/org/scala_lang:scala_library": true,
		},
		"scala_test": {
			"@third_party_jvm//3rdparty/jvm/org/scalatest":            true,
			"@third_party_jvm//3rdparty/jvm/org/scalatest:scalatest":  true,
			"@third_party_jvm//3rdparty/jvm/org/scala_lang:scala_library": true,
		},
	}
}
