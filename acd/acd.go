// Package acd reads Microsoft Agent character definition files (the
// textual .acd format produced by decompiling an .acs character).
//
// The format is line oriented. A block opens with a "Define<Name>" line
// (optionally followed by an inline argument which becomes the block's
// ID), closes with an "End<Name>" line, and carries "key = value"
// properties in between. Blocks nest, and a block type may occur more
// than once under the same parent.
//
// The parser is deliberately forgiving: lines it does not recognize are
// skipped, an unmatched End line is ignored, and the only hard failure
// is the definition file not existing at all.
package acd

import (
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

var (
	startBlockPattern = regexp.MustCompile(`^(Define\w+)(?:\s+(.*))?$`)
	endBlockPattern   = regexp.MustCompile(`^End\w+$`)
	propertyPattern   = regexp.MustCompile(`^(\w+)\s*=\s*(.*)$`)
)

// Parse parses acd-formatted text into a block tree and returns the
// synthetic root node. It never fails; input that matches no recognized
// line shape is skipped, as are blank lines and // comments.
func Parse(text string) *Node {
	root := newNode()
	stack := []*Node{root}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if m := startBlockPattern.FindStringSubmatch(line); m != nil {
			blockType := strings.TrimPrefix(m[1], "Define")
			child := newNode()
			if m[2] != "" {
				child.id = parseVal(m[2])
				child.hasID = true
			}
			stack[len(stack)-1].addChild(blockType, child)
			stack = append(stack, child)
			continue
		}

		if endBlockPattern.MatchString(line) {
			// Never pop the synthetic root, even on unmatched End lines.
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if m := propertyPattern.FindStringSubmatch(line); m != nil {
			stack[len(stack)-1].props[m[1]] = parseVal(m[2])
			continue
		}
	}

	return root
}

// Load reads and parses the definition file at the passed path.
//
// The file is decoded as ISO-8859-1, the single byte encoding the
// original tooling wrote these files in, so no byte sequence can make
// decoding fail. A missing file is the only error this package
// surfaces to callers.
func Load(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening acd file")
	}
	defer f.Close()

	b, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(f))
	if err != nil {
		return nil, errors.Wrap(err, "reading acd file")
	}
	return Parse(string(b)), nil
}

// parseVal interprets a raw property or block argument as a scalar.
//
// One layer of surrounding double quotes is stripped. Text consisting
// entirely of decimal digits becomes an integer; anything else stays a
// string. A leading minus sign therefore keeps the value a string,
// matching the original format handling (durations in the format are
// never negative).
func parseVal(raw string) Value {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if isAllDigits(s) {
		n, err := strconv.Atoi(s)
		if err == nil {
			return Value{Num: n, IsNum: true}
		}
		// Out of range for int; fall through and keep the digits as a
		// string.
	}
	return Value{Str: s}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
