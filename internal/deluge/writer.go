package deluge

import (
	"errors"
	"io/fs"

	"delugekit/internal/fileutil"
	"delugekit/internal/kit"
	"delugekit/internal/kiterr"
)

// WriteResult describes one WriteKit call.
type WriteResult struct {
	Path   string
	Digest string
	Bytes  int
	// Unchanged is true when the file already held identical content.
	Unchanged bool
}

// WriteKit renders k and writes it to path. All filesystem failures carry
// kiterr.ErrWrite.
func WriteKit(path string, k *kit.Kit) (WriteResult, error) {
	data := Render(k)
	res := WriteResult{Path: path, Digest: fileutil.Digest(data), Bytes: len(data)}

	existing, err := fileutil.FileDigest(path)
	switch {
	case err == nil && existing == res.Digest:
		res.Unchanged = true
		return res, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return res, kiterr.Wrap(kiterr.ErrWrite, path, "read existing kit", "", err)
	}

	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return res, kiterr.Wrap(kiterr.ErrWrite, path, "write kit", "", err)
	}
	return res, nil
}
