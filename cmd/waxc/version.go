package main

import (
	"fmt"

	"github.com/hashicorp/go-version"
)

// supportedWasmABI is the only WASM ABI version this encoder targets;
// the --wasm-abi flag exists so the CLI surface can validate a
// requested target against it rather than silently ignoring a
// mismatched request.
var supportedWasmABI = version.Must(version.NewVersion("1.0"))

func validateWasmABI(requested string) error {
	if requested == "" {
		return nil
	}
	v, err := version.NewVersion(requested)
	if err != nil {
		return fmt.Errorf("invalid --wasm-abi %q: %w", requested, err)
	}
	if !v.Equal(supportedWasmABI) {
		return fmt.Errorf("unsupported --wasm-abi %q: this encoder only emits WASM %s", requested, supportedWasmABI)
	}
	return nil
}
