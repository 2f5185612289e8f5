//go:build mage

// Package main provides build targets for todo using Mage.
//
// Usage:
//
//	mage build    Compile the todo binary to bin/
//	mage test     Run all tests
//	mage race     Run all tests with the race detector
//	mage lint     Run go vet and golangci-lint
//	mage clean    Remove build artifacts
//	mage install  Install todo to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "todo"
	binaryDir  = "bin"
	cmdDir     = "./cmd/todo"
)

// ldflags stamps the version from $TODO_VERSION, falling back to "dev".
func ldflags() string {
	version := os.Getenv("TODO_VERSION")
	if version == "" {
		version = "dev"
	}
	return "-X main.Version=" + version
}

// Build compiles the todo binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs all tests with the race detector.
func Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Lint runs go vet and golangci-lint.
func Lint() error {
	if err := sh.RunV(binGo, "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}

// Install installs todo to GOPATH/bin.
func Install() error {
	mg.Deps(Test)
	return sh.RunV(binGo, "install", "-ldflags", ldflags(), cmdDir)
}
