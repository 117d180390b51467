package writer

// MemWriter keeps the last snapshot in memory.
type MemWriter struct {
	Buf    []byte
	Writes int
}

// WriteSnapshot stores a copy of buf.
func (w *MemWriter) WriteSnapshot(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	w.Writes++
	return nil
}
