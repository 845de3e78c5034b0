package foreground

import (
	"fmt"
	"os/exec"
	"strings"
)

const frontmostScript = `tell application "System Events" to tell (first process whose frontmost is true) to return (get bundle identifier) & "\n" & (get name)`

type provider struct {
	osascriptPath string
}

type unsupportedProvider struct{}

func newProvider() Provider {
	path, err := exec.LookPath("osascript")
	if err != nil {
		return unsupportedProvider{}
	}
	return &provider{osascriptPath: path}
}

func (p *provider) Foreground() (Sample, error) {
	output, err := exec.Command(p.osascriptPath, "-e", frontmostScript).Output()
	if err != nil {
		return Sample{}, fmt.Errorf("osascript frontmost: %w", err)
	}
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	sample := Sample{App: strings.TrimSpace(lines[0])}
	if len(lines) > 1 {
		sample.ClassName = strings.TrimSpace(lines[1])
	}
	return sample, nil
}

func (unsupportedProvider) Foreground() (Sample, error) {
	return Sample{}, ErrUnsupported
}
