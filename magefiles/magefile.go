//go:build mage

// Package main contains Mage build targets for chemprot-standoff developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "chemprot-standoff"
	cmdPkg  = "./cmd/chemprot-standoff"
)

// partitions are the ChemProt partition directories converted by Corpus.
var partitions = []string{
	"chemprot_training",
	"chemprot_development",
	"chemprot_test_gs",
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Corpus converts every ChemProt partition found under $CHEMPROT_DIR
// (default ./ChemProt_Corpus) into standoff/<partition>/. Missing
// partitions are skipped.
func Corpus() error {
	mg.Deps(Build)

	root := os.Getenv("CHEMPROT_DIR")
	if root == "" {
		root = "ChemProt_Corpus"
	}
	bin := filepath.Join(binDir, binName)

	for _, name := range partitions {
		in := filepath.Join(root, name)
		if _, err := os.Stat(in); err != nil {
			fmt.Printf("skipping %s: %v\n", name, err)
			continue
		}
		out := filepath.Join("standoff", name)
		report := filepath.Join("standoff", name+"-report.yaml")
		if err := sh.RunV(bin, "-i", in, "-o", out, "--create-output", "--report", report); err != nil {
			return fmt.Errorf("converting %s: %w", name, err)
		}
	}
	return nil
}

// Clean removes build and conversion output.
func Clean() error {
	for _, dir := range []string{binDir, "standoff"} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}
