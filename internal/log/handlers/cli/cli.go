package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli/internal/util"
	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
)

// Default handler outputting to stderr.
var Default = New(os.Stderr)

var bold = color.New(color.Bold)

// Colors mapping.
var Colors = [...]*color.Color{
	log.DebugLevel: color.New(color.FgWhite),
	log.InfoLevel:  color.New(color.FgBlue),
	log.WarnLevel:  color.New(color.FgYellow),
	log.ErrorLevel: color.New(color.FgRed),
	log.FatalLevel: color.New(color.FgRed),
}

// Strings mapping.
var Strings = [...]string{
	log.DebugLevel: "•",
	log.InfoLevel:  "•",
	log.WarnLevel:  "•",
	log.ErrorLevel: "⨯",
	log.FatalLevel: "⨯",
}

// WarningWidth is the width at which inline warnings are wrapped.
const WarningWidth = 60

// Handler implementation.
type Handler struct {
	mu      sync.Mutex
	Writer  io.Writer
	Padding int
}

// New handler.
func New(w io.Writer) *Handler {
	if f, ok := w.(*os.File); ok {
		return &Handler{
			Writer:  colorable.NewColorable(f),
			Padding: 3,
		}
	}

	return &Handler{
		Writer:  w,
		Padding: 3,
	}
}

func logSectionTitle(w io.Writer, f log.Fields) error {
	colWidth := 24

	title := f.Get("title").(string)
	if n := util.EscapeAwareRuneCountInString(title); n > colWidth {
		colWidth = n
	}
	fmt.Fprint(w, "┏"+strings.Repeat("━", colWidth+2)+"┓\n")
	fmt.Fprintf(w, "┃ %s ┃\n", util.RightPad(title, colWidth))
	fmt.Fprint(w, "┗"+strings.Repeat("━", colWidth+2)+"┛\n")
	return nil
}

func logTable(w io.Writer, f log.Fields) error {
	color := color.New(color.FgBlue)

	names := f.Names()

	var lines []string
	colWidth := 0
	for _, name := range names {
		if name == "type" {
			continue
		}
		line := fmt.Sprintf("%s: %v", color.Sprint(name), f.Get(name))
		lineLength := util.EscapeAwareRuneCountInString(line)
		lines = append(lines, line)
		if colWidth < lineLength {
			colWidth = lineLength
		}
	}

	fmt.Fprint(w, "┏"+strings.Repeat("━", colWidth+2)+"┓\n")
	for _, line := range lines {
		fmt.Fprintf(w, "┃ %s ┃\n",
			util.RightPad(line, colWidth),
		)
	}
	fmt.Fprint(w, "┗"+strings.Repeat("━", colWidth+2)+"┛\n")
	return nil
}

// logGrid renders the "header" and "rows" fields as a table whose
// columns keep the order in which they were logged.
func logGrid(w io.Writer, f log.Fields) error {
	header, _ := f.Get("header").([]string)
	rows, _ := f.Get("rows").([][]string)

	widths := make([]int, len(header))
	for idx, cell := range header {
		widths[idx] = util.EscapeAwareRuneCountInString(cell)
	}
	for _, row := range rows {
		for idx := 0; idx < len(row) && idx < len(widths); idx++ {
			widths[idx] = max(widths[idx], util.EscapeAwareRuneCountInString(row[idx]))
		}
	}

	border := func(left, mid, right string) {
		var parts []string
		for _, width := range widths {
			parts = append(parts, strings.Repeat("━", width+2))
		}
		fmt.Fprint(w, left+strings.Join(parts, mid)+right+"\n")
	}
	line := func(cells []string, style *color.Color) {
		var parts []string
		for idx, width := range widths {
			var cell string
			if idx < len(cells) {
				cell = cells[idx]
			}
			if style != nil {
				cell = style.Sprint(cell)
			}
			parts = append(parts, " "+util.RightPad(cell, width)+" ")
		}
		fmt.Fprint(w, "┃"+strings.Join(parts, "┃")+"┃\n")
	}

	border("┏", "┳", "┓")
	line(header, bold)
	border("┣", "╋", "┫")
	for _, row := range rows {
		line(row, nil)
	}
	border("┗", "┻", "┛")
	return nil
}

var stageGlyphs = map[string]string{
	"completed": "✔",
	"current":   "●",
	"pending":   "○",
}

var stageColors = map[string]*color.Color{
	"completed": color.New(color.FgGreen),
	"current":   color.New(color.FgBlue, color.Bold),
	"pending":   color.New(color.FgWhite),
}

func logStageProgress(w io.Writer, e *log.Entry) error {
	labels, _ := e.Fields.Get("stages").([]string)
	statuses, _ := e.Fields.Get("statuses").([]string)
	percent, _ := e.Fields.Get("percent").(int)
	current, _ := e.Fields.Get("current").(int)

	var parts []string
	for idx, label := range labels {
		var status string
		if idx < len(statuses) {
			status = statuses[idx]
		}
		if status == "current" {
			label = bold.Sprint(label)
		}
		glyph := stageGlyphs[status]
		if c, found := stageColors[status]; found {
			glyph = c.Sprint(glyph)
		}
		parts = append(parts, fmt.Sprintf("%s %s", glyph, label))
	}
	fmt.Fprintf(w, "%s  %s\n", strings.Join(parts, " ─ "),
		color.New(color.FgBlue).Sprintf("%d%%", percent))
	fmt.Fprintf(w, "%s %s\n", bold.Sprintf("Step %d of %d:", current, len(labels)), e.Message)
	if description, found := e.Fields.Get("description").(string); found && description != "" {
		fmt.Fprintf(w, "%s\n", description)
	}
	return nil
}

func logToast(w io.Writer, e *log.Entry) error {
	glyph := color.New(color.FgGreen).Sprint("✔")
	if e.Fields.Get("kind") == "error" {
		glyph = color.New(color.FgRed).Sprint("⨯")
	}
	fmt.Fprintf(w, "%s %s\n", glyph, e.Message)
	return nil
}

func logWarning(w io.Writer, e *log.Entry, padding int) error {
	yellow := color.New(color.FgYellow)
	for idx, line := range util.WrapString(e.Message, WarningWidth) {
		glyph := " "
		if idx == 0 {
			glyph = "!"
		}
		fmt.Fprintf(w, "%s %s\n", yellow.Sprint(bold.Sprintf("%*s", padding+1, glyph)), yellow.Sprint(line))
	}
	return nil
}

// TypedLog is used for handling special "typed" logs to the CLI
func (h *Handler) TypedLog(t string, e *log.Entry) error {
	switch t {
	case "table":
		return logTable(h.Writer, e.Fields)
	case "grid", "estimates":
		return logGrid(h.Writer, e.Fields)
	case "section_title":
		return logSectionTitle(h.Writer, e.Fields)
	case "stage_progress":
		return logStageProgress(h.Writer, e)
	case "toast":
		return logToast(h.Writer, e)
	case "inline_warning":
		return logWarning(h.Writer, e, h.Padding)
	default:
		return h.DefaultLog(e)
	}
}

// DefaultLog is the default way of printing out logs
func (h *Handler) DefaultLog(e *log.Entry) error {
	color := Colors[e.Level]
	level := Strings[e.Level]
	names := e.Fields.Names()

	s := color.Sprintf("%s %-25s", bold.Sprintf("%*s", h.Padding+1, level), e.Message)
	for _, name := range names {
		if name == "source" || name == "type" {
			continue
		}
		s += fmt.Sprintf(" %s=%v", color.Sprint(name), e.Fields.Get(name))
	}

	fmt.Fprint(h.Writer, s)
	fmt.Fprintln(h.Writer)
	return nil
}

// HandleLog implements log.Handler.
func (h *Handler) HandleLog(e *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, isTyped := e.Fields["type"].(string)
	if isTyped {
		return h.TypedLog(t, e)
	}

	return h.DefaultLog(e)
}
