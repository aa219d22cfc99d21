package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeExtension installs an executable shell script named rsk-<name> in a temporary PATH.
func writeExtension(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script extensions are not supported on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "rsk-"+name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("cannot write extension: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// captureStdout runs f and returns what it wrote on os.Stdout.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()
	f()
	w.Close()
	return <-done
}

func TestRunExtension(t *testing.T) {
	writeExtension(t, "hello", `echo "$RSK_CONFIG $RSK_VERBOSE $1"`+"\n")

	oldConfig, oldVerbose := *configFile, *Verbose
	*configFile, *Verbose = "custom.yaml", true
	defer func() { *configFile, *Verbose = oldConfig, oldVerbose }()

	var found bool
	var code int
	out := captureStdout(t, func() {
		found, code = RunExtension("hello", []string{"world"})
	})
	if !found || code != 0 {
		t.Fatalf("RunExtension() = (%v, %d), want (true, 0)", found, code)
	}
	if got, want := strings.TrimSpace(out), "custom.yaml true world"; got != want {
		t.Errorf("extension output = %q, want %q", got, want)
	}
}

func TestRunExtensionExitCode(t *testing.T) {
	writeExtension(t, "fail", "exit 3\n")

	found, code := RunExtension("fail", nil)
	if !found || code != 3 {
		t.Errorf("RunExtension() = (%v, %d), want (true, 3)", found, code)
	}
}

func TestRunExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension("does-not-exist", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}
