package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LineContext represents a line from a dump with surrounding context
type LineContext struct {
	Before     []string // Up to two lines before the target, oldest first
	Target     string   // The actual target line
	After      []string // Up to two lines after the target
	LineNumber int      // Line number of the target
	ErrorMsg   string   // Error message if file couldn't be read
}

// contextLines is the number of lines shown on each side of the target.
const contextLines = 2

// GetLineContext reads a file up to the target line and returns it with
// surrounding context. Dumps can be very large, so only the lines around
// the target are retained and reading stops right after them.
func GetLineContext(filePath string, lineNumber int) LineContext {
	result := LineContext{
		LineNumber: lineNumber,
	}

	// Expand tilde in file path
	if strings.HasPrefix(filePath, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			filePath = strings.Replace(filePath, "~", home, 1)
		}
	}

	if lineNumber < 1 {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range", lineNumber)
		return result
	}

	file, err := os.Open(filePath)
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	currentLine := 0
	found := false
	for scanner.Scan() {
		currentLine++
		text := scanner.Text()
		switch {
		case currentLine < lineNumber:
			result.Before = append(result.Before, text)
			if len(result.Before) > contextLines {
				result.Before = result.Before[1:]
			}
		case currentLine == lineNumber:
			result.Target = text
			found = true
		default:
			result.After = append(result.After, text)
		}
		if currentLine >= lineNumber+contextLines {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
		return result
	}

	if !found {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (file has %d lines)", lineNumber, currentLine)
		result.Before = nil
	}

	return result
}

// String renders the context with line numbers, marking the target line.
func (c LineContext) String() string {
	if c.ErrorMsg != "" {
		return c.ErrorMsg
	}
	var sb strings.Builder
	n := c.LineNumber - len(c.Before)
	for _, l := range c.Before {
		fmt.Fprintf(&sb, "  %6d | %s\n", n, l)
		n++
	}
	fmt.Fprintf(&sb, "> %6d | %s\n", n, c.Target)
	n++
	for _, l := range c.After {
		fmt.Fprintf(&sb, "  %6d | %s\n", n, l)
		n++
	}
	return sb.String()
}
