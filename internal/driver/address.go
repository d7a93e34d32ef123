package driver

import (
	"math/rand"
	"strconv"

	"github.com/distr1/depfix/internal/env"
)

const (
	portRangeLo = 40000
	portRangeHi = 43000
)

// pickBindAddress resolves the bind-address option: defaulting to
// 127.0.0.1 plus a random port in [40000, 43000), overridden by
// BIND_ADDRESS when the flag is absent.
func pickBindAddress(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env.BindAddress != "" {
		return env.BindAddress
	}
	port := portRangeLo + rand.Intn(portRangeHi-portRangeLo)
	return "127.0.0.1:" + strconv.Itoa(port)
}
