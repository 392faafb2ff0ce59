package rill

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// SplitPath splits a PATH environment value on ':', preserving empty
// segments (spec §6: "read once at start, split on ':', preserving empty
// segments"). An empty segment conventionally means the current
// directory, same as POSIX shells.
func SplitPath(path string) []string {
	return strings.Split(path, ":")
}

// joinPathEntry normalizes a PATH entry against a trailing slash before
// joining it with a command name, per the open question in spec §9.
func joinPathEntry(dir, name string) string {
	if dir == "" {
		return name
	}
	return strings.TrimRight(dir, "/") + "/" + name
}

// ExecResult carries everything externalCall needs out of one attempted
// external-process invocation.
type ExecResult struct {
	Ran      bool
	ExitCode int
	Signaled bool
	Signal   string
	Captured string
}

// runExternal runs one PATH candidate, wiring stdin/stdout as two
// independent OS pipes the way spec §5 describes: stdinValue (if present)
// is written into the child's stdin, and stdout is captured when capture
// is true, otherwise inherited so the process's output reaches the real
// terminal directly.
func runExternal(fullPath string, argv []string, stdinValue *Value, capture bool) ExecResult {
	// A bare name (from an empty PATH entry) runs from the current
	// directory; exec.Command would otherwise search the process PATH.
	if !strings.Contains(fullPath, "/") {
		fullPath = "./" + fullPath
	}
	cmd := exec.Command(fullPath, argv...)
	if stdinValue != nil {
		cmd.Stdin = strings.NewReader(stdinValue.String())
	}
	var stdout bytes.Buffer
	if capture {
		cmd.Stdout = &stdout
	} else {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	result := ExecResult{Captured: stdout.String()}
	switch e := err.(type) {
	case nil:
		result.Ran = true
		result.ExitCode = 0
	case *exec.ExitError:
		result.Ran = true
		result.ExitCode = e.ExitCode()
		if ws, ok := e.Sys().(syscall.WaitStatus); ok {
			uws := unix.WaitStatus(ws)
			if uws.Signaled() {
				result.Signaled = true
				result.Signal = uws.Signal().String()
			}
		}
	default:
		// exec.LookPath-style failure (not found, not executable, …):
		// this PATH entry simply doesn't have it. Not "ran".
	}
	return result
}

// externalCall implements spec §4.4.1's External call algorithm: try each
// PATH entry left to right, stop at the first exit status zero, otherwise
// keep the last attempt's result. capture controls whether stdout is
// wired into a pipe (piping=true) or inherited. If every PATH entry fails
// even to exec, that is not fatal to the interpreter (spec §7, "External":
// the result is simply absent, mirroring the shell convention) — it is
// treated exactly like a found executable that exited non-zero with
// nothing captured.
func externalCall(pathDirs []string, name string, argv []string, stdinValue *Value, capture bool) (*Value, error) {
	var last ExecResult
	anyRan := false
	for _, dir := range pathDirs {
		full := joinPathEntry(dir, name)
		res := runExternal(full, argv, stdinValue, capture)
		if !res.Ran {
			continue
		}
		anyRan = true
		last = res
		if res.ExitCode == 0 {
			break
		}
	}
	if !anyRan || !capture {
		return nil, nil
	}
	v := ConvertCaptured(last.Captured)
	return &v, nil
}
