// Package main builds fmtcheck into bin/. The binary treats the parent of its
// own directory as the project root, so bin/ must sit directly under the root
// of the C++ project it checks.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const versionVar = "github.com/andyballingall/fmtcheck/internal/app.Version"

func main() {
	outDir := "bin"
	if len(os.Args) > 1 {
		// e.g. go run ./scripts/build ../mylib/bin
		outDir = os.Args[1]
	}

	binaryName := "fmtcheck"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}

	version := gitVersion()
	ldflags := fmt.Sprintf("-X %s=%s", versionVar, version)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Printf("❌ Failed to create %s: %v\n", outDir, err)
		os.Exit(1)
	}

	outputPath := filepath.Join(outDir, binaryName)
	fmt.Printf("Building %s...\n", version)

	cmd := exec.CommandContext(context.Background(), "go", "build", "-ldflags", ldflags, "-o", outputPath, "./cmd/fmtcheck")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Printf("❌ Build failed: %v\n", err)
		os.Exit(1)
	}

	root, _ := filepath.Abs(filepath.Dir(outDir))
	fmt.Printf("✅ Build complete: %s (checks %s)\n", outputPath, root)
}

// gitVersion describes HEAD, or returns "dev" outside a git checkout.
func gitVersion() string {
	cmd := exec.CommandContext(context.Background(), "git", "describe", "--tags", "--always", "--dirty")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "dev"
	}
	return strings.TrimSpace(out.String())
}
