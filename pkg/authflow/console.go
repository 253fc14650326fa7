package authflow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ConsolePrompter reads operator input line by line. The password is read
// without echo when stdin is a terminal.
type ConsolePrompter struct {
	raw io.Reader
	in  *bufio.Reader
	out io.Writer
}

func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{raw: in, in: bufio.NewReader(in), out: out}
}

func (p *ConsolePrompter) Phone() (string, error) {
	return p.ask("Enter your phone number (international format): ")
}

func (p *ConsolePrompter) Code() (string, error) {
	return p.ask("Enter the code you received: ")
}

func (p *ConsolePrompter) Password(hint string) (string, error) {
	fmt.Fprintf(p.out, "Enter the password (hint %s): ", hint)
	if f, ok := p.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
	return p.readLine()
}

func (p *ConsolePrompter) ask(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	return p.readLine()
}

func (p *ConsolePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
