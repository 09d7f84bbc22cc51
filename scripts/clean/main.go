// Package main removes build and test artefacts.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	if err := os.RemoveAll("bin"); err != nil {
		fmt.Printf("❌ Failed to remove dir bin: %v\n", err)
	} else {
		fmt.Println("✅ Removed dir bin")
	}

	// FMTCHECK_LOG_FILE may point anywhere; only the conventional local name is cleaned.
	for _, pattern := range []string{"fmtcheck.log", "coverage*", "*.out", "*.test"} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			fmt.Printf("❌ Failed to glob pattern %s: %v\n", pattern, err)
			continue
		}
		for _, match := range matches {
			if rErr := os.Remove(match); rErr != nil {
				fmt.Printf("❌ Failed to remove %s: %v\n", match, rErr)
			} else {
				fmt.Printf("✅ Removed %s\n", match)
			}
		}
	}
}
