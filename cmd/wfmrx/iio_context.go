package main

import (
	"fmt"

	"wfmrx/internal/sdrsrc"
)

// dialIIOContext connects to a libiio context at uri. The IIO driver
// stack itself is an external collaborator (spec scope covers only the
// DSP chain and the sdrsrc.Context interface it is driven through); no
// concrete IIO binding is linked into this build, so live-SDR mode
// reports a clear configuration failure rather than silently no-opting.
// Deployments that need the live path link a real libiio-backed
// sdrsrc.Context here.
func dialIIOContext(uri string) (sdrsrc.Context, error) {
	return nil, fmt.Errorf("no IIO context backend linked into this build; use --capture, or build with a libiio binding wired into dialIIOContext")
}
