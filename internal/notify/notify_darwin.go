package notify

import (
	"fmt"
	"log"
	"os/exec"
)

type desktopIndicator struct {
	osascriptPath string
	logger        *log.Logger
}

func newIndicator(logger *log.Logger) Indicator {
	path, err := exec.LookPath("osascript")
	if err != nil {
		return nil
	}
	return &desktopIndicator{osascriptPath: path, logger: logger}
}

func (d *desktopIndicator) Update(title, body string) {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	if err := exec.Command(d.osascriptPath, "-e", script).Run(); err != nil {
		d.logger.Printf("indicator: osascript failed: %v", err)
	}
}

func (d *desktopIndicator) Clear() {
	// Notification Center manages its own dismissal.
}
