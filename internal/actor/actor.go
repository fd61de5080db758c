// Package actor resolves who is performing a roster operation. Every
// mutation records an actor identity, so humans and automated agents
// working the same board stay distinguishable in the event log.
package actor

import (
	"os"
	"os/exec"
	"os/user"
	"strings"
)

// EnvVar overrides actor detection when set. Agent harnesses export it
// so every task they touch carries their name.
const EnvVar = "ROSTER_ACTOR"

// Resolve picks the actor identity, strongest signal first:
// an explicit --actor flag, the ROSTER_ACTOR environment variable,
// the project config's default_actor, git's user.name, and finally
// the OS username. Returns "unknown" only when everything fails.
func Resolve(flag, configDefault string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(EnvVar)); v != "" {
		return v
	}
	if v := strings.TrimSpace(configDefault); v != "" {
		return v
	}
	if v := gitUserName(); v != "" {
		return v
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}

func gitUserName() string {
	out, err := exec.Command("git", "config", "user.name").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
