// Package targetlist reads lists of target-convention instruction names.
//
// The format is one name per line. Blank lines and lines starting with '#'
// are ignored.
package targetlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Instruction is a target instruction identified by its name.
type Instruction string

// Name returns the instruction name.
func (i Instruction) Name() string {
	return string(i)
}

// ReadFile reads the instruction list stored at path.
func ReadFile(path string) ([]Instruction, error) {
	fpath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving absolute filepath: %w", err)
	}

	file, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return Read(file)
}

// Read parses an instruction list.
func Read(r io.Reader) ([]Instruction, error) {
	insns := make([]Instruction, 0)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.ContainsAny(line, " \t") {
			return nil, fmt.Errorf("line %d: instruction name contains whitespace: %q", lineNum, line)
		}
		insns = append(insns, Instruction(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading instruction list: %w", err)
	}
	return insns, nil
}
