package foreground

import (
	"fmt"
	"os/exec"
	"strings"
)

type provider struct {
	xdotoolPath string
	xpropPath   string
}

type unsupportedProvider struct{}

func newProvider() Provider {
	xdotool, err := exec.LookPath("xdotool")
	if err != nil {
		return unsupportedProvider{}
	}
	xprop, err := exec.LookPath("xprop")
	if err != nil {
		return unsupportedProvider{}
	}
	return &provider{xdotoolPath: xdotool, xpropPath: xprop}
}

func (p *provider) Foreground() (Sample, error) {
	output, err := exec.Command(p.xdotoolPath, "getactivewindow").Output()
	if err != nil {
		return Sample{}, fmt.Errorf("xdotool getactivewindow: %w", err)
	}
	windowID := strings.TrimSpace(string(output))
	if windowID == "" {
		return Sample{}, nil
	}

	output, err = exec.Command(p.xpropPath, "-id", windowID, "WM_CLASS").Output()
	if err != nil {
		return Sample{}, fmt.Errorf("xprop WM_CLASS: %w", err)
	}
	instance, class := parseWMClass(string(output))
	return Sample{App: class, ClassName: instance}, nil
}

// parseWMClass extracts the instance and class names from an xprop line of
// the form `WM_CLASS(STRING) = "navigator", "Firefox"`.
func parseWMClass(line string) (instance, class string) {
	_, value, found := strings.Cut(line, "=")
	if !found {
		return "", ""
	}
	var names []string
	for _, part := range strings.Split(value, ",") {
		names = append(names, strings.Trim(strings.TrimSpace(part), `"`))
	}
	if len(names) > 0 {
		instance = names[0]
	}
	if len(names) > 1 {
		class = names[1]
	}
	return instance, class
}

func (unsupportedProvider) Foreground() (Sample, error) {
	return Sample{}, ErrUnsupported
}
