//go:build !(linux || darwin)

package index

import (
	"os"
)

// StatFile captures what the platform exposes portably: modification time,
// permission bits and size. The remaining fields are zero.
func StatFile(path string) (FileStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileStat{}, err
	}

	mtime := info.ModTime()
	return FileStat{
		CtimeSec:  uint32(mtime.Unix()),
		CtimeNsec: uint32(mtime.Nanosecond()),
		MtimeSec:  uint32(mtime.Unix()),
		MtimeNsec: uint32(mtime.Nanosecond()),
		Mode:      uint32(info.Mode().Perm()),
		Size:      uint32(info.Size()),
	}, nil
}
