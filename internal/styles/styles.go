// Package styles maps filesystem entries to display styles for completion
// suggestions, following the LS_COLORS convention.
package styles

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PathStyler resolves a display style for a candidate path. The completion
// core only consults it; coloring rules live entirely on this side of the
// contract.
type PathStyler interface {
	// StyleForPath returns the style for the given path, or nil when the
	// path should be rendered unstyled. info may be nil when the entry
	// could not be stat'ed.
	StyleForPath(path string, info os.FileInfo) *lipgloss.Style
}

// defaultSpec mirrors the common LS_COLORS defaults for the entry kinds
// completion cares about.
const defaultSpec = "di=01;34:ln=01;36:ex=01;32"

// LsColorStyler is a PathStyler driven by an LS_COLORS-style specification
// such as "di=01;34:*.tar=01;31".
type LsColorStyler struct {
	byKind map[string]lipgloss.Style
	byExt  map[string]lipgloss.Style
}

var _ PathStyler = (*LsColorStyler)(nil)

// NewLsColorStyler parses spec into a styler. An empty spec yields the
// default color table. Unparseable entries are skipped.
func NewLsColorStyler(spec string) *LsColorStyler {
	s := &LsColorStyler{
		byKind: make(map[string]lipgloss.Style),
		byExt:  make(map[string]lipgloss.Style),
	}
	s.parse(defaultSpec)
	if spec != "" {
		s.parse(spec)
	}
	return s
}

func (s *LsColorStyler) parse(spec string) {
	for _, entry := range strings.Split(spec, ":") {
		key, codes, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		style := styleFromSGR(codes)
		if ext, found := strings.CutPrefix(key, "*"); found {
			s.byExt[ext] = style
		} else {
			s.byKind[key] = style
		}
	}
}

// StyleForPath implements PathStyler.
func (s *LsColorStyler) StyleForPath(path string, info os.FileInfo) *lipgloss.Style {
	if info != nil {
		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			if style, ok := s.byKind["ln"]; ok {
				return &style
			}
		case info.IsDir():
			if style, ok := s.byKind["di"]; ok {
				return &style
			}
		case info.Mode()&0111 != 0:
			if style, ok := s.byKind["ex"]; ok {
				return &style
			}
		}
	}

	if ext := filepath.Ext(path); ext != "" {
		if style, ok := s.byExt[ext]; ok {
			return &style
		}
	}
	if style, ok := s.byKind["fi"]; ok {
		return &style
	}
	return nil
}

// styleFromSGR converts a semicolon-separated SGR code sequence into a
// lipgloss style.
func styleFromSGR(codes string) lipgloss.Style {
	style := lipgloss.NewStyle()
	parts := strings.Split(codes, ";")
	for i := 0; i < len(parts); i++ {
		switch parts[i] {
		case "", "0", "00":
			// reset carries no styling of its own
		case "1", "01":
			style = style.Bold(true)
		case "3", "03":
			style = style.Italic(true)
		case "4", "04":
			style = style.Underline(true)
		case "38":
			// 38;5;n extended foreground
			if i+2 < len(parts) && parts[i+1] == "5" {
				style = style.Foreground(lipgloss.Color(parts[i+2]))
				i += 2
			}
		case "48":
			if i+2 < len(parts) && parts[i+1] == "5" {
				style = style.Background(lipgloss.Color(parts[i+2]))
				i += 2
			}
		default:
			if color, ok := ansiColor(parts[i]); ok {
				style = style.Foreground(color)
			}
		}
	}
	return style
}

// ansiColor maps the classic 30-37/90-97 SGR foreground codes onto the
// 16-color palette.
func ansiColor(code string) (lipgloss.Color, bool) {
	table := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	c, ok := table[code]
	if !ok {
		return "", false
	}
	return lipgloss.Color(c), true
}
