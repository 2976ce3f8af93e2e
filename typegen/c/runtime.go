package c

import (
	_ "embed"
)

// RuntimeHeaderName is the file name generated code includes
const RuntimeHeaderName = "cfgopt.h"

//go:embed runtime/cfgopt.h
var runtimeHeader []byte

// RuntimeHeader returns a copy of the support header declaring
// struct cfgopt_result, the array aggregates and their helpers
func RuntimeHeader() []byte {
	out := make([]byte, len(runtimeHeader))
	copy(out, runtimeHeader)
	return out
}
