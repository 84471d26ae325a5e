package patch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/mqmods/pkg/mqmods"
)

// nestedIndent is added before lines appended under a still-open tag.
const nestedIndent = "   "

// Engine applies a Recipe to a line stream.
// Engine holds no per-run state and is safe for concurrent use as long as the
// logger is.
type Engine struct {
	recipe *Recipe
	logger mqmods.Logger
}

// NewEngine creates a patch engine.
// Panics if recipe or logger is nil.
func NewEngine(recipe *Recipe, logger mqmods.Logger) *Engine {
	if recipe == nil {
		panic("recipe cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Engine{
		recipe: recipe,
		logger: logger,
	}
}

// Apply streams r to w, rewriting lines whose leading tag has a rule.
//
// All other lines are written unchanged. The output uses the line terminator
// of the first input line and every written line is terminated.
//
// Returns the per-action counts. On error the output is incomplete and must
// not replace the original file.
func (e *Engine) Apply(r io.Reader, w io.Writer) (mqmods.PatchCounts, error) {
	var counts mqmods.PatchCounts

	in := newLineReader(r)
	out := newLineWriter(w, in)

	for {
		line, err := in.readLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return counts, fmt.Errorf("failed to read input: %w", err)
		}

		if err := e.handleLine(in, out, line, &counts); err != nil {
			return counts, err
		}
		if out.err != nil {
			return counts, fmt.Errorf("failed to write output: %w", out.err)
		}
	}

	if err := out.flush(); err != nil {
		return counts, fmt.Errorf("failed to write output: %w", err)
	}

	return counts, nil
}

func (e *Engine) handleLine(in *lineReader, out *lineWriter, line string, counts *mqmods.PatchCounts) error {
	if strings.TrimSpace(line) == "" {
		out.writeLine(line)
		return nil
	}

	tag, ok := LocateTag(line)
	if !ok {
		out.writeLine(line)
		return nil
	}

	rule, ok := e.recipe.Lookup(tag.Key())
	if !ok {
		out.writeLine(line)
		return nil
	}

	switch rule.Action {
	case ActionAppend:
		return e.appendLines(in, out, line, tag, rule, counts)
	case ActionDelete:
		return e.deleteTag(in, line, rule, counts)
	case ActionReplace:
		return e.replaceTag(in, out, line, tag, rule, counts)
	case ActionSetValue:
		return e.setValue(in, out, line, tag, rule, counts)
	default:
		return fmt.Errorf("%w: %v for %s", ErrUnknownAction, rule.Action, rule.TagName)
	}
}

func (e *Engine) appendLines(in *lineReader, out *lineWriter, line string, tag Tag, rule Rule, counts *mqmods.PatchCounts) error {
	closing := rule.ClosingTag()

	out.writeLine(line)

	if rule.AfterClosingTag && !strings.Contains(line, closing) && !in.atEOF() {
		next, err := in.readLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(next) != "" {
			out.writeLine(next)
		}

		if !strings.Contains(next, closing) {
			e.warnClosingTag(closing, line, next, counts)
		}
	}

	extra := ""
	if !rule.AfterClosingTag {
		extra = nestedIndent
	}

	for _, parameter := range rule.Lines {
		out.writeLine(tag.Indent + extra + strings.TrimSpace(parameter))
		e.logger.Info("Appended parameter:      <%s>", TagName(parameter))
	}

	counts.Appended++
	return nil
}

func (e *Engine) deleteTag(in *lineReader, line string, rule Rule, counts *mqmods.PatchCounts) error {
	if err := e.consumeValueLine(in, line, rule, counts); err != nil {
		return err
	}

	e.logger.Info("Deleted parameter:       %s", rule.TagName)
	counts.Deleted++
	return nil
}

func (e *Engine) replaceTag(in *lineReader, out *lineWriter, line string, tag Tag, rule Rule, counts *mqmods.PatchCounts) error {
	if err := e.consumeValueLine(in, line, rule, counts); err != nil {
		return err
	}

	for _, parameter := range rule.Lines {
		out.writeLine(tag.Indent + strings.TrimSpace(parameter))
		e.logger.Info("Replaced parameter:      %s changed to <%s>", rule.TagName, TagName(parameter))
	}

	counts.Replaced++
	return nil
}

func (e *Engine) setValue(in *lineReader, out *lineWriter, line string, tag Tag, rule Rule, counts *mqmods.PatchCounts) error {
	if strings.TrimSpace(rule.OldValue) != "" && !strings.Contains(line, rule.OldValue) {
		e.logger.Info("Not changing parameter value since the existing value is not '%s': %s", rule.OldValue, strings.TrimSpace(line))
		out.writeLine(line)
		counts.Unchanged++
		return nil
	}

	if err := e.consumeValueLine(in, line, rule, counts); err != nil {
		return err
	}

	name := rule.Name()
	updated := fmt.Sprintf("%s<%s>%s</%s>", tag.Indent, name, rule.NewValue, name)
	out.writeLine(updated)

	e.logger.Info("Updated parameter value: %s", strings.TrimSpace(updated))
	counts.Updated++
	return nil
}

// consumeValueLine skips the line after a tag whose closing tag is not on
// the same line. Nothing is consumed at end of input.
func (e *Engine) consumeValueLine(in *lineReader, line string, rule Rule, counts *mqmods.PatchCounts) error {
	closing := rule.ClosingTag()

	if strings.Contains(line, closing) || in.atEOF() {
		return nil
	}

	next, err := in.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if !strings.Contains(next, closing) {
		e.warnClosingTag(closing, line, next, counts)
	}
	return nil
}

func (e *Engine) warnClosingTag(closing, line, next string, counts *mqmods.PatchCounts) {
	e.logger.Warning("Closing tag not found in the current line or the next line: %s\n  %s\n  %s", closing, line, next)
	counts.Warnings++
}

// lineReader reads lines with one byte of lookahead so callers can ask
// whether more input remains.
type lineReader struct {
	r   *bufio.Reader
	eol string
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// readLine returns the next line without its terminator.
// Returns io.EOF only when no further text exists.
func (lr *lineReader) readLine() (string, error) {
	s, err := lr.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && s == "" {
		return "", io.EOF
	}

	if strings.HasSuffix(s, "\n") {
		s = s[:len(s)-1]
		terminator := "\n"
		if strings.HasSuffix(s, "\r") {
			s = s[:len(s)-1]
			terminator = "\r\n"
		}
		if lr.eol == "" {
			lr.eol = terminator
		}
	}

	return s, nil
}

// atEOF reports whether no bytes remain.
func (lr *lineReader) atEOF() bool {
	_, err := lr.r.Peek(1)
	return err != nil
}

// lineWriter writes terminated lines and keeps the first write error.
type lineWriter struct {
	w   *bufio.Writer
	in  *lineReader
	err error
}

func newLineWriter(w io.Writer, in *lineReader) *lineWriter {
	return &lineWriter{w: bufio.NewWriter(w), in: in}
}

func (lw *lineWriter) writeLine(line string) {
	if lw.err != nil {
		return
	}
	eol := lw.in.eol
	if eol == "" {
		eol = "\n"
	}
	if _, err := lw.w.WriteString(line); err != nil {
		lw.err = err
		return
	}
	if _, err := lw.w.WriteString(eol); err != nil {
		lw.err = err
	}
}

func (lw *lineWriter) flush() error {
	if lw.err != nil {
		return lw.err
	}
	return lw.w.Flush()
}
