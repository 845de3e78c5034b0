package notify

import (
	"log"
	"os/exec"
)

// The synchronous hint makes compliant notification daemons replace the
// previous indicator instead of stacking one per tick.
const syncHint = "string:x-canonical-private-synchronous:exergate"

type desktopIndicator struct {
	notifySendPath string
	logger         *log.Logger
	shown          bool
}

func newIndicator(logger *log.Logger) Indicator {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return nil
	}
	return &desktopIndicator{notifySendPath: path, logger: logger}
}

func (d *desktopIndicator) Update(title, body string) {
	cmd := exec.Command(d.notifySendPath,
		"--app-name=exergate",
		"--urgency=low",
		"--hint="+syncHint,
		title, body)
	if err := cmd.Run(); err != nil {
		d.logger.Printf("indicator: notify-send failed: %v", err)
		return
	}
	d.shown = true
}

func (d *desktopIndicator) Clear() {
	if !d.shown {
		return
	}
	d.shown = false
	// notify-send cannot withdraw a notification; replace it with a short-
	// lived blank so the stale countdown does not linger.
	cmd := exec.Command(d.notifySendPath,
		"--app-name=exergate",
		"--urgency=low",
		"--expire-time=1",
		"--hint="+syncHint,
		"exergate", "Session ended")
	if err := cmd.Run(); err != nil {
		d.logger.Printf("indicator: notify-send clear failed: %v", err)
	}
}
