package mtconfig

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const lineEnding = "\r\n"

// ReadFile loads a UTF-16 configuration file. Any failure to read, decode
// or parse the file is reported as ErrCodeNotFound.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeNotFound,
			Message: "config file not found or unreadable",
			Path:    path,
			Err:     err,
		}
	}

	text, err := decodeFile(data)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeNotFound,
			Message: "config file is not valid UTF-16",
			Path:    path,
			Err:     err,
		}
	}

	cfg, err := Parse(strings.NewReader(text))
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeNotFound,
			Message: "config file is malformed",
			Path:    path,
			Err:     err,
		}
	}
	return cfg, nil
}

// Parse reads decoded INI text.
//
// Accepted syntax: [Section] headers, key=value or key: value
// assignments, full-line comments starting with # or ;, blank lines, and
// continuation lines indented deeper than their key. A line indented no
// deeper than the previous key starts a new key. Keys and values are
// trimmed but otherwise kept verbatim. Duplicate sections or keys are
// rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	var (
		current   *Section
		lastKey   string
		keyIndent int
		lineNo    int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		line := strings.TrimSpace(raw)

		if line == "" {
			lastKey = ""
			continue
		}
		if line[0] == '#' || line[0] == ';' {
			continue
		}

		indent := len(raw) - len(strings.TrimLeft(raw, " \t"))

		// Continuation of the previous value: indented deeper than its key.
		if lastKey != "" && indent > keyIndent {
			prev, _ := current.Get(lastKey)
			current.set(lastKey, prev+"\n"+line)
			continue
		}

		if line[0] == '[' {
			if !strings.HasSuffix(line, "]") {
				return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("unterminated section header %q", line)}
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			if name == "" {
				return nil, &ParseError{Line: lineNo, Message: "empty section name"}
			}
			if cfg.HasSection(name) {
				return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("duplicate section [%s]", name)}
			}
			current = cfg.AddSection(name)
			lastKey = ""
			continue
		}

		if current == nil {
			return nil, &ParseError{Line: lineNo, Message: "assignment before first section header"}
		}

		idx := strings.IndexAny(line, "=:")
		if idx < 0 {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("expected key=value, got %q", line)}
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" {
			return nil, &ParseError{Line: lineNo, Message: "empty key"}
		}
		if _, dup := current.Get(key); dup {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("duplicate key %q in [%s]", key, current.name)}
		}
		current.set(key, value)
		lastKey = key
		keyIndent = indent
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// String returns the decoded INI text exactly as it is written to disk,
// before UTF-16 encoding.
func (c *Config) String() string {
	var b strings.Builder
	for _, s := range c.sections {
		b.WriteString("[" + s.name + "]" + lineEnding)
		for _, k := range s.keys {
			v := strings.ReplaceAll(s.values[k], "\n", lineEnding+"\t")
			b.WriteString(k + " = " + v + lineEnding)
		}
		b.WriteString(lineEnding)
	}
	return b.String()
}

// WriteTo writes the UTF-16 encoded configuration to w.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	data, err := encodeFile(c.String())
	if err != nil {
		return 0, fmt.Errorf("encode config: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}

// WriteFile writes the UTF-16 encoded configuration to path, creating or
// truncating it.
func (c *Config) WriteFile(path string) error {
	data, err := encodeFile(c.String())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
