// Package notify is the side-effecting end of the reminder pipeline: desktop
// notifications plus an optional sound, both fire-and-forget. Failures stay
// inside this package; nothing here may take the scanner down.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type Notification struct {
	Title  string
	Body   string
	Sound  string
	Volume int
}

type Notifier interface {
	Send(Notification) error
}

type Noop struct{}

func (Noop) Send(Notification) error { return nil }

// Desktop shells out to the platform notifier and hands the sound to the
// player queue. Send returns once the notification command finishes; sound
// playback continues on its own.
type Desktop struct {
	Player *SoundPlayer
}

func (d Desktop) Send(n Notification) error {
	if d.Player != nil {
		d.Player.Enqueue(n.Sound, n.Volume)
	}
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
