package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteSentences writes one sentence per line with tokens separated by a
// single space. Empty sentences are skipped.
func WriteSentences(w io.Writer, sentences [][]string) error {
	bw := bufio.NewWriter(w)
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		if _, err := bw.WriteString(strings.Join(sentence, " ")); err != nil {
			return fmt.Errorf("write sentence: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write sentence: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush sentences: %w", err)
	}
	return nil
}

// ReadSentences splits r into lines and each line into whitespace separated
// tokens. Blank lines are skipped.
func ReadSentences(r io.Reader) ([][]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var sentences [][]string
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		sentences = append(sentences, tokens)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read sentences: %w", err)
	}
	return sentences, nil
}
