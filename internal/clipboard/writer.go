package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	ttoclip "github.com/atotto/clipboard"

	"snaptex/internal/port"
)

// Writer delivers one payload to the system clipboard.
type Writer interface {
	Name() string
	Write(req port.WriteRequest) error
}

// NativeWriter uses the in-process clipboard binding. It carries only the
// plain-text channel; payloads with custom MIME entries must go through the
// command fallback or the structured format would be silently dropped.
type NativeWriter struct{}

// NewNativeWriter creates a NativeWriter.
func NewNativeWriter() *NativeWriter {
	return &NativeWriter{}
}

// Name implements Writer.
func (w *NativeWriter) Name() string { return "native" }

// Write implements Writer.
func (w *NativeWriter) Write(req port.WriteRequest) error {
	if len(req.Entries) > 0 {
		return errors.New("custom MIME entries require the command fallback")
	}
	if err := ttoclip.WriteAll(req.Text); err != nil {
		return fmt.Errorf("native clipboard write: %w", err)
	}
	return nil
}

// CommandWriter pipes payloads through the platform copy command. A write
// counts as successful only when the command exits cleanly AND the payload
// was actually fed to its stdin; a clean exit with nothing fed means the
// clipboard was not populated.
type CommandWriter struct {
	command  string
	baseArgs []string
	mimeFlag string
}

// NewCommandWriter creates a CommandWriter. An empty command autodetects the
// platform copy command; a non-empty command overrides it and is split on
// whitespace into command plus base arguments.
func NewCommandWriter(command string) *CommandWriter {
	w := &CommandWriter{}
	if command != "" {
		parts := strings.Fields(command)
		w.command = parts[0]
		w.baseArgs = parts[1:]
		return w
	}

	switch runtime.GOOS {
	case "darwin":
		w.command = "pbcopy"
	case "windows":
		w.command = "clip"
	default:
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			w.command = "wl-copy"
			w.mimeFlag = "--type"
		} else {
			w.command = "xclip"
			w.baseArgs = []string{"-selection", "clipboard"}
			w.mimeFlag = "-t"
		}
	}
	return w
}

// Name implements Writer.
func (w *CommandWriter) Name() string { return "command" }

// Write implements Writer. The plain-text channel is written first; custom
// MIME entries follow, each under its own target type. Commands without a
// target flag decline payloads carrying entries before touching the
// clipboard, so partial delivery is reported instead of hidden.
func (w *CommandWriter) Write(req port.WriteRequest) error {
	if w.mimeFlag == "" && len(req.Entries) > 0 {
		return fmt.Errorf("%s has no MIME target flag to carry custom entries", w.command)
	}
	if err := w.run(w.baseArgs, []byte(req.Text)); err != nil {
		return err
	}
	for _, entry := range req.Entries {
		args := append(append([]string{}, w.baseArgs...), w.mimeFlag, entry.MimeType)
		if err := w.run(args, []byte(entry.Data)); err != nil {
			return fmt.Errorf("writing %s entry: %w", entry.MimeType, err)
		}
	}
	return nil
}

func (w *CommandWriter) run(args []string, data []byte) error {
	cmd := exec.Command(w.command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("opening %s stdin: %w", w.command, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", w.command, err)
	}

	n, werr := stdin.Write(data)
	_ = stdin.Close()
	fed := werr == nil && n == len(data)

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s exited: %w", w.command, err)
	}
	if !fed {
		if werr == nil {
			werr = io.ErrShortWrite
		}
		return fmt.Errorf("%s exited cleanly but the payload feed never completed: %w", w.command, werr)
	}
	return nil
}
