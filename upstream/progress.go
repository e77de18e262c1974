package upstream

import "io"

// progressReader reports fractional upload progress as the transport drains
// the request body. The callback receives values in [0, 1].
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	callback func(float64)
}

func newProgressReader(r io.Reader, total int64, callback func(float64)) *progressReader {
	return &progressReader{r: r, total: total, callback: callback}
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 && pr.total > 0 && pr.callback != nil {
		pr.read += int64(n)
		pr.callback(float64(pr.read) / float64(pr.total))
	}
	return n, err
}
