//go:build !windows

package process

import (
	"os/exec"
	"syscall"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup_TerminatesGroup - Leader and children die together
// ---------------------------------------------------------------------------

func TestKillProcessGroup_TerminatesGroup(t *testing.T) {
	t.Parallel()

	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	// The shell forks a child sleep so the group has more than one member.
	cmd := exec.Command(sh, "-c", "sleep 30 & wait")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting process: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	KillProcessGroup(cmd.Process.Pid)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("process group still running after KillProcessGroup")
	}
}
