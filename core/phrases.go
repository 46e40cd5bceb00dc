package agent

import "strings"

// minCommaSplitIndex is the minimum number of characters that must precede a
// comma before it counts as a phrase boundary. Short clauses ("Hi,") would
// sound choppy when synthesized on their own.
const minCommaSplitIndex = 10

// extractPhrases splits buffer into complete speakable phrases and the
// unfinished remainder. A phrase ends at '.', '!', '?' or ','. Commas only
// count from index minCommaSplitIndex onward, and every terminator must be
// followed by a space, a newline, or the end of the buffer. Multiple phrases
// can come out of a single call.
//
// The comma rule is a plain character count, so enumerations and decimals
// ("3, 4, 5") split like any other text. Known rough edge, kept as-is.
func extractPhrases(buffer string) (phrases []string, remainder string) {
	for {
		end := -1
		for i := 0; i < len(buffer) && end == -1; i++ {
			switch buffer[i] {
			case '.', '!', '?':
			case ',':
				if i < minCommaSplitIndex {
					continue
				}
			default:
				continue
			}

			if i == len(buffer)-1 || buffer[i+1] == ' ' || buffer[i+1] == '\n' {
				end = i
			}
		}

		if end == -1 {
			return phrases, buffer
		}

		if phrase := strings.TrimSpace(buffer[:end+1]); phrase != "" {
			phrases = append(phrases, phrase)
		}
		buffer = strings.TrimLeft(buffer[end+1:], " \n")
	}
}
