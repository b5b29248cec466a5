package main

import (
	"fmt"
	"os"
)

// b64 - configurable base64 codec, host binding runner and HTTP service
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
