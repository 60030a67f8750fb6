package session

import "io"

// Chunks slices the reader's contents at fixed size boundaries. Every chunk
// is full-sized except possibly the last.
func Chunks(r io.Reader, size int) ([][]byte, error) {
	var chunks [][]byte
	for {
		buf := make([]byte, size)
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			chunks = append(chunks, buf[:n])
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return chunks, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
