package repl

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"quantity-editor/internal/logging"
)

const historyName = ".quantity_editor_history"

// Run reads lines until exit, EOF or a terminal error
func Run(s *Session, out io.Writer, version string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(s.Complete)

	historyFile := filepath.Join(os.TempDir(), historyName)
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	io.WriteString(out, "quantity-editor "+version+"\n")
	io.WriteString(out, "Type ':help' for commands, 'exit' or Ctrl+D to quit\n\n")

	for {
		input, err := line.Prompt(s.Prompt())
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			io.WriteString(out, "^C\n")
			continue
		case errors.Is(err, io.EOF):
			io.WriteString(out, "\n")
			return nil
		case err != nil:
			logging.Error("read input", zap.Error(err))
			return err
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if s.Handle(input) {
			return nil
		}
	}
}
