//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets (all, unit, race).
type Test mg.Namespace

// Packages whose tests start child processes.
var launchPkgs = []string{"/internal/launch", "/internal/cli"}

// All runs all tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Unit runs tests of packages that do not launch child processes.
func (Test) Unit() error {
	pkgs, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for pkg := range strings.SplitSeq(pkgs, "\n") {
		if pkg == "" || launchesProcesses(pkg) {
			continue
		}
		unitPkgs = append(unitPkgs, pkg)
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	args := append([]string{"test", "-v"}, unitPkgs...)
	return sh.RunV(binGo, args...)
}

// Race runs all tests with the race detector; the splash loop and channel
// router are the packages it matters for.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

func launchesProcesses(pkg string) bool {
	for _, suffix := range launchPkgs {
		if strings.HasSuffix(pkg, suffix) {
			return true
		}
	}
	return false
}
