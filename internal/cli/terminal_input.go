package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

var errNoTerminal = errors.New("stdin is not an interactive terminal")

// readSecretLine reads one line from stdin with terminal echo switched off.
func readSecretLine(stdin *os.File) (string, error) {
	if stdin == nil {
		return "", errNoTerminal
	}

	restore, err := disableEcho(stdin)
	if err != nil {
		return "", errNoTerminal
	}
	defer restore()

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
