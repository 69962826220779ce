package browser

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/flintwood/foxdrift/internal/logx"
)

// spawnResult bundles what spawnFirefox hands back to the caller once a
// session has announced itself over the pool: everything a Window needs
// to take ownership of the process and profile it launched.
type spawnResult struct {
	sessionID SessionId
	tabID     TabId
	conn      *Connection
	cmd       *exec.Cmd
	profile   *profile
}

// spawnFirefox implements §4.4's spawn lifecycle: materialize a profile,
// register a waiter before the process exists so the handshake can
// never race ahead of it, launch Firefox pointed at the bootstrap data
// URI, and block for the READY handshake within the configured
// timeout. Any failure after profile materialization cleans up
// everything it created — a failed spawn leaves no process, no
// ephemeral profile, and no routing-table entry, per §7.
func spawnFirefox(ctx context.Context, pool *ConnectionPool, cfg ResolvedConfig, sessionID SessionId) (*spawnResult, error) {
	prof, err := materializeProfile(cfg)
	if err != nil {
		return nil, err
	}

	waiter := pool.RegisterWaiter(sessionID)

	bootstrapURI, err := buildBootstrapURI(pool.URL(), sessionID)
	if err != nil {
		pool.CancelWaiter(sessionID)
		prof.cleanup()
		return nil, err
	}

	cmd := exec.Command(cfg.Binary, firefoxArgs(prof.Dir, cfg, bootstrapURI)...)
	setFirefoxProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		pool.CancelWaiter(sessionID)
		prof.cleanup()
		return nil, NewError(ErrProcessLaunchFailed, fmt.Sprintf("starting firefox: %v", err))
	}
	logx.Infof("supervisor: spawned firefox pid=%d session=%d profile=%s", cmd.Process.Pid, sessionID, prof.Dir)

	waitCtx, cancel := context.WithTimeout(ctx, cfg.HandshakeTimeout)
	defer cancel()

	select {
	case conn := <-waiter:
		return &spawnResult{sessionID: sessionID, tabID: conn.InitialTabID(), conn: conn, cmd: cmd, profile: prof}, nil

	case <-waitCtx.Done():
		pool.CancelWaiter(sessionID)
		killFirefoxProcessGroup(cmd, true)
		cmd.Wait()
		prof.cleanup()
		return nil, NewError(ErrConnectionTimeout, fmt.Sprintf("session %d did not connect within %s", sessionID, cfg.HandshakeTimeout)).withField("timeout_ms", cfg.HandshakeTimeout.Milliseconds())
	}
}

// firefoxArgs builds the process argument list per §6's process
// interface: profile, optional headless/window-size flags, then the
// bootstrap data URI as the start page.
func firefoxArgs(profileDir string, cfg ResolvedConfig, bootstrapURI string) []string {
	args := []string{"-profile", profileDir, "-no-remote", "-new-instance"}
	if cfg.Headless {
		args = append(args, "-headless")
	}
	if cfg.WindowWidth > 0 {
		args = append(args, "-width", fmt.Sprint(cfg.WindowWidth))
	}
	if cfg.WindowHeight > 0 {
		args = append(args, "-height", fmt.Sprint(cfg.WindowHeight))
	}
	args = append(args, bootstrapURI)
	return args
}

// killFirefox runs §4.4's shutdown sequence: a graceful signal, a
// bounded grace period for the process to exit on its own, then a hard
// kill of the whole process group. It always blocks until the process
// has actually exited.
func killFirefox(cmd *exec.Cmd, grace time.Duration) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	killFirefoxProcessGroup(cmd, false)

	done := make(chan struct{})
	go func() {
		cmd.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(grace):
		killFirefoxProcessGroup(cmd, true)
		<-done
	}
}
