package chunking

import "strings"

// Splitter slides a fixed word window over the text, advancing by Stride
// words, so consecutive chunks overlap by Window-Stride words. A window is
// emitted for every start position before the end of the sequence, so the
// tail of the text can surface as a short final chunk of its own.
type Splitter struct {
	Window int
	Stride int
}

func NewSplitter(window, stride int) *Splitter {
	if window <= 0 {
		window = 200
	}
	if stride <= 0 || stride >= window {
		stride = window * 3 / 4
	}
	return &Splitter{
		Window: window,
		Stride: stride,
	}
}

func (s *Splitter) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	out := make([]string, 0, len(words)/s.Stride+1)
	for start := 0; start < len(words); start += s.Stride {
		end := start + s.Window
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[start:end], " "))
	}
	return out
}
