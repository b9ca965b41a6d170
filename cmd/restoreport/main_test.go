// Package main provides tests for the restoreport CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/restoreport/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "restoreport") {
		t.Errorf("version output should contain 'restoreport', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	expected := []string{"report", "doctor", "version", "completion", "--driver", "--format"}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("help output should contain '%s', got: %s", want, output)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"frobnicate"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown command")
	}
}
