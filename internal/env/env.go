// Package env captures details about the depfix runtime environment.
package env

import "os"

// BindAddress is the bind address for the build-event listener, read
// once from the BIND_ADDRESS environment variable. It overrides the
// default only when the -bind_address flag is absent; empty means "no
// override".
var BindAddress = findBindAddress()

func findBindAddress() string {
	return os.Getenv("BIND_ADDRESS")
}
