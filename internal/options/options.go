// internal/options/options.go
package options

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

const (
	prefix        = '-'
	DefaultFormat = "jpg"
)

// ErrHelp is returned when -h is given. Callers print Usage and exit 0.
var ErrHelp = errors.New("help requested")

// Error is a malformed or missing command-line option.
type Error struct {
	Token string
	Msg   string
}

func (e *Error) Error() string {
	if e.Token == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Token, e.Msg)
}

// Options holds everything the command line can set.
type Options struct {
	FrameCount uint
	Format     string
	Save       bool
	Display    bool
	Verbose    bool

	// Device overrides the configured capture device when non-empty.
	Device string
	// Preview enables the websocket preview. PreviewAddr, when non-empty,
	// overrides the configured listen address.
	Preview     bool
	PreviewAddr string
	Dashboard   bool
}

// Parse turns command-line tokens (without the program name) into Options.
// Every token is a flag; the character after the dash picks which one, and
// -f, -n, -i and -w take the rest of the token as their value.
func Parse(args []string) (Options, error) {
	opts := Options{Format: DefaultFormat}

	for _, tok := range args {
		if len(tok) < 2 || tok[0] != prefix {
			return opts, &Error{Token: tok, Msg: "unexpected argument"}
		}
		val := tok[2:]
		switch tok[1] {
		case 'v':
			opts.Verbose = true
		case 's':
			opts.Save = true
		case 'd':
			opts.Display = true
		case 'f':
			// Unknown formats are left for the image encoder to reject.
			opts.Format = val
		case 'n':
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return opts, &Error{Token: tok, Msg: "frame count must be an unsigned integer"}
			}
			opts.FrameCount = uint(n)
		case 'i':
			if val == "" {
				return opts, &Error{Token: tok, Msg: "device required"}
			}
			opts.Device = val
		case 'w':
			opts.Preview = true
			opts.PreviewAddr = val
		case 't':
			opts.Dashboard = true
		case 'h':
			return opts, ErrHelp
		default:
			return opts, &Error{Token: tok, Msg: "unrecognized flag"}
		}
	}

	if opts.FrameCount == 0 {
		return opts, &Error{Msg: "frame count required and must be nonzero"}
	}
	return opts, nil
}

var (
	usageTitleStyle = lipgloss.NewStyle().Bold(true)
	usageFlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
)

var usageFlags = []struct {
	flag, help string
}{
	{"-v", "Verbose mode (default: off)"},
	{"-s", "Saves frames under the image directory (default: off)"},
	{"-d", "Displays images on the screen (default: off)"},
	{"-f<fmt>", "Sets format to the specified value (default: jpg)"},
	{"-i<dev>", "Capture device index or path (default: from config, 0)"},
	{"-w[addr]", "Streams frames to a browser preview (default addr: from config, localhost:8080)"},
	{"-t", "Shows a terminal dashboard while capturing"},
	{"-h", "Prints this message"},
}

// Usage writes the help text for prog to w.
func Usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "%s\t%s -n<n_frames> [OPTIONS]\n", usageTitleStyle.Render("Usage:"), prog)
	fmt.Fprintln(w, usageTitleStyle.Render("Options available:"))
	for _, f := range usageFlags {
		fmt.Fprintf(w, "\t%-10s\t%s\n", usageFlagStyle.Render(f.flag), f.help)
	}
}
