package notify

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestLogIndicator(t *testing.T) {
	var buf bytes.Buffer
	ind := NewLog(log.New(&buf, "", 0))

	ind.Update("Timing: Firefox", "Time left: 04:59")
	ind.Clear()

	out := buf.String()
	if !strings.Contains(out, "Timing: Firefox | Time left: 04:59") {
		t.Errorf("log output %q missing indicator update", out)
	}
	if !strings.Contains(out, "cleared") {
		t.Errorf("log output %q missing clear", out)
	}
}

func TestNewNeverReturnsNil(t *testing.T) {
	if New(nil) == nil {
		t.Fatal("New() must fall back to the log indicator")
	}
}
