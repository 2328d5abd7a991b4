package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// maxLineBytes bounds a single log record.
const maxLineBytes = 1 << 20

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var tail []string
	for scanner.Scan() {
		tail = append(tail, scanner.Text())
		// Compact once the window doubles so memory stays O(maxLines).
		if maxLines > 0 && len(tail) >= 2*maxLines {
			tail = append(tail[:0], tail[len(tail)-maxLines:]...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if maxLines > 0 && len(tail) > maxLines {
		tail = tail[len(tail)-maxLines:]
	}
	return tail, nil
}
