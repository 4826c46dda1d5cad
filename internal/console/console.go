// Package console writes the user-facing chat output: status notices,
// failure alerts, the messenger prompt and relayed chat text.  Styling
// is applied only when the output is a color-capable terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Console is safe for concurrent use; each call is written atomically.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	color bool

	notice lipgloss.Style
	alert  lipgloss.Style
	name   lipgloss.Style
}

// New returns a console writing to out.  When color is false every
// line is written as plain text.
func New(out io.Writer, color bool) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:    out,
		color:  color,
		notice: r.NewStyle().Foreground(lipgloss.Color("14")),
		alert:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		name:   r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	}
}

// Detect reports whether output to f should be colored.
func Detect(f *os.File, noColor bool) bool {
	if noColor || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (c *Console) render(s lipgloss.Style, text string) string {
	if !c.color {
		return text
	}
	return s.Render(text)
}

// Notice writes a status line.
func (c *Console) Notice(format string, args ...interface{}) {
	c.line(c.notice, fmt.Sprintf(format, args...))
}

// Alert writes a failure line.
func (c *Console) Alert(format string, args ...interface{}) {
	c.line(c.alert, fmt.Sprintf(format, args...))
}

func (c *Console) line(s lipgloss.Style, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.render(s, text))
}

// Prompt writes the messenger prompt "<name>> " without a newline.
func (c *Console) Prompt(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, c.render(c.name, name)+"> ")
}

// Message writes relayed chat text verbatim followed by a newline.
func (c *Console) Message(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, text+"\n") //nolint:errcheck
}

// Ask writes question and reads one line of the answer from in.  The
// line terminator is stripped.  io.EOF is returned only when nothing
// at all could be read.
func (c *Console) Ask(question string, in *bufio.Reader) (string, error) {
	c.mu.Lock()
	fmt.Fprint(c.out, question)
	c.mu.Unlock()
	return ReadLine(in)
}

// ReadLine reads one line from in and strips the trailing "\n" or
// "\r\n".  A final line without a terminator is returned as is.
func ReadLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
