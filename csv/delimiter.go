package csv

import (
	"bufio"
	"io"
	"strings"

	"hermannm.dev/wrap"
)

var DefaultDelimitersToCheck = []rune{',', ';', '\t', '|', ' '}

// DeduceFieldDelimiter picks the delimiter that occurs most consistently in the first lines of the
// file: a delimiter with the same count on every line wins over one with varying counts, and higher
// counts win among equals. Falls back to the first delimiter to check if none occur.
func DeduceFieldDelimiter(
	csvFile io.ReadSeeker,
	maxLinesToCheck int,
	delimitersToCheck []rune,
) (delimiter rune, err error) {
	// Resets reader position in file before returning, so its data can be read subsequently
	defer func() {
		if _, seekErr := csvFile.Seek(0, io.SeekStart); seekErr != nil {
			err = wrap.Error(seekErr, "failed to reset CSV reader after deducing field delimiter")
		}
	}()

	if len(delimitersToCheck) == 0 {
		delimitersToCheck = DefaultDelimitersToCheck
	}

	candidates := make([]delimiterCandidate, 0, len(delimitersToCheck))
	for _, delimiter := range delimitersToCheck {
		candidates = append(candidates, delimiterCandidate{delimiter: delimiter, lowestCount: -1})
	}

	scanner := bufio.NewScanner(csvFile)
	for i := 0; i < maxLinesToCheck && scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		for i := range candidates {
			candidates[i].countIn(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, wrap.Error(err, "failed to read CSV file")
	}

	best := delimiterCandidate{delimiter: delimitersToCheck[0]}
	for _, candidate := range candidates {
		if candidate.betterThan(best) {
			best = candidate
		}
	}

	return best.delimiter, nil
}

type delimiterCandidate struct {
	delimiter    rune
	highestCount int
	lowestCount  int
}

func (candidate *delimiterCandidate) countIn(line string) {
	count := strings.Count(line, string(candidate.delimiter))

	if candidate.highestCount < count {
		candidate.highestCount = count
	}
	if candidate.lowestCount == -1 || candidate.lowestCount > count {
		candidate.lowestCount = count
	}
}

func (candidate delimiterCandidate) consistent() bool {
	return candidate.highestCount > 0 && candidate.highestCount == candidate.lowestCount
}

func (candidate delimiterCandidate) betterThan(other delimiterCandidate) bool {
	if candidate.highestCount == 0 {
		return false
	}
	if candidate.consistent() != other.consistent() {
		return candidate.consistent()
	}
	if candidate.lowestCount == 0 && other.lowestCount > 0 {
		return false
	}
	return candidate.highestCount > other.highestCount
}
