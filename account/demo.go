package account

import (
	"context"
	"sync"
	"time"
)

// DemoPassword is the only password DemoRunner accepts
const DemoPassword = "platformio"

// DemoRunner simulates the account service for previewing the dialog
// without a PlatformIO installation. Registered accounts live in memory.
type DemoRunner struct {
	Delay time.Duration

	mu         sync.Mutex
	registered map[string]bool
}

// NewDemoRunner creates a DemoRunner that knows about the given accounts
func NewDemoRunner(delay time.Duration, accounts ...string) *DemoRunner {
	r := &DemoRunner{
		Delay:      delay,
		registered: make(map[string]bool),
	}
	for _, a := range accounts {
		r.registered[a] = true
	}
	return r
}

func (r *DemoRunner) Login(ctx context.Context, username, password string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	if !r.known(username) || password != DemoPassword {
		return &CommandError{Command: CommandLogin, ExitCode: 1, Message: "Invalid user credentials"}
	}
	return nil
}

func (r *DemoRunner) Register(ctx context.Context, username string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.registered[username] {
		return &CommandError{Command: CommandRegister, ExitCode: 1, Message: "User with this username already exists"}
	}
	r.registered[username] = true
	return nil
}

func (r *DemoRunner) ForgotPassword(ctx context.Context, username string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	if !r.known(username) {
		return &CommandError{Command: CommandForgot, ExitCode: 1, Message: "Account not found"}
	}
	return nil
}

func (r *DemoRunner) known(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registered[username]
}

func (r *DemoRunner) wait(ctx context.Context) error {
	if r.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(r.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
