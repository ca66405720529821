package utils

import (
	"bufio"
	"io"
	"os"
)

func CloseOrPanic(file io.Closer) {
	if err := file.Close(); err != nil {
		panic(err)
	}
}

// ReadLines returns the lines of path with trailing newlines stripped.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer CloseOrPanic(f)

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
