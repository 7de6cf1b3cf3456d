package input

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	merrors "github.com/JustNevi/mpass/internal/errors"
)

// PromptSecret asks for a secret twice on the terminal without echo and
// returns it only when both entries match.
func PromptSecret(name string) ([]byte, error) {
	return promptSecret(ReadPassphrase, name)
}

func promptSecret(ask func(prompt string) ([]byte, error), name string) ([]byte, error) {
	first, err := ask(fmt.Sprintf("Enter password for %s: ", name))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(first)) == 0 {
		return nil, fmt.Errorf("%w: no password given", merrors.ErrEmptyInput)
	}

	second, err := ask(fmt.Sprintf("Retype password for %s: ", name))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(first, second) {
		return nil, fmt.Errorf("%w: the entered passwords do not match", merrors.ErrInputMismatch)
	}

	return first, nil
}

// ReadMultiline collects a multiline secret from r. Piped input is read
// to EOF verbatim; interactive input is read line by line until a blank
// line or EOF. Leading byte-order marks are stripped either way, since
// redirected files from other platforms often carry one.
func ReadMultiline(r io.Reader, interactive bool) ([]byte, error) {
	if !interactive {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read secret from stdin: %w", err)
		}
		data = stripBOM(data)
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, fmt.Errorf("%w: stdin held no secret data", merrors.ErrEmptyInput)
		}
		return data, nil
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no lines entered", merrors.ErrEmptyInput)
	}

	data := []byte(strings.Join(lines, "\n") + "\n")
	return stripBOM(data), nil
}

// stripBOM removes a single UTF-8, UTF-16LE, or UTF-16BE byte-order mark
// from the head of data.
func stripBOM(data []byte) []byte {
	switch {
	case bytes.HasPrefix(data, []byte{0xef, 0xbb, 0xbf}):
		return data[3:]
	case bytes.HasPrefix(data, []byte{0xff, 0xfe}):
		return data[2:]
	case bytes.HasPrefix(data, []byte{0xfe, 0xff}):
		return data[2:]
	}
	return data
}

// AskYesNo prints a [y/N] prompt to w and reads one line from r. Only an
// explicit yes counts; everything else, including EOF, declines.
func AskYesNo(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)

	reader := bufio.NewReader(r)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
