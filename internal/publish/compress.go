package publish

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
)

const brExt = ".br"

var compressibleExts = map[string]bool{
	".html": true,
	".css":  true,
	".csv":  true,
	".json": true,
	".svg":  true,
}

func compressible(name string) bool {
	return compressibleExts[strings.ToLower(filepath.Ext(name))]
}

// CompressFile writes a brotli-compressed sibling of src (src + ".br") and
// returns its path.
func CompressFile(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	dst := src + brExt
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}

	bw := brotli.NewWriterLevel(out, brotli.BestCompression)
	if _, err := io.Copy(bw, in); err != nil {
		out.Close()
		return "", fmt.Errorf("compress %s: %w", src, err)
	}
	if err := bw.Close(); err != nil {
		out.Close()
		return "", fmt.Errorf("flush %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dst, err)
	}

	return dst, nil
}
