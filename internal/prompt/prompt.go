// Package prompt reads operator input from a terminal for the admin tools.
package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/Sonchiik/Workout-Traker/internal/common"
)

// ErrPasswordMismatch is returned by NewPassword when the confirmation differs.
var ErrPasswordMismatch = errors.New("passwords do not match")

// readPassword is swapped out in tests so nothing touches the terminal.
var readPassword = term.ReadPassword

// Text prints prompt to w and reads one line from reader. Surrounding
// whitespace is trimmed. A final line without a newline is still returned.
//
//	Prompt text
//	> _
func Text(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password prints label to w and reads a password from fd without echo.
// The caller owns the returned slice and should wipe it after use.
func Password(fd int, label string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, label); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// NewPassword asks for a password twice. Both reads are wiped except the
// returned one.
func NewPassword(fd int, w io.Writer) ([]byte, error) {
	first, err := Password(fd, "Enter password: ", w)
	if err != nil {
		return nil, err
	}
	second, err := Password(fd, "Repeat password: ", w)
	if err != nil {
		common.WipeByteArray(first)
		return nil, err
	}
	defer common.WipeByteArray(second)

	if !bytes.Equal(first, second) {
		common.WipeByteArray(first)
		return nil, ErrPasswordMismatch
	}
	return first, nil
}
