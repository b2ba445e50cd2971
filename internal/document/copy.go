package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyPDF copies the generated PDF into <destBase>/<folderName>/, creating
// the destination folder when needed, and returns the destination path.
func CopyPDF(src, destBase, folderName string) (string, error) {
	destDir := filepath.Join(destBase, folderName)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create copy folder %q: %w", destDir, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open PDF %q: %w", src, err)
	}
	defer in.Close()

	dest := filepath.Join(destDir, filepath.Base(src))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("copy PDF to %q: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("flush %q: %w", dest, err)
	}
	return dest, nil
}
