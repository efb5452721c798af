//go:build linux || darwin

package index

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// StatFile captures the metadata stored in an index entry for the file at
// path. Symbolic links are followed.
func StatFile(path string) (FileStat, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return FileStat{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}

	return FileStat{
		CtimeSec:  uint32(st.Ctim.Sec),
		CtimeNsec: uint32(st.Ctim.Nsec),
		MtimeSec:  uint32(st.Mtim.Sec),
		MtimeNsec: uint32(st.Mtim.Nsec),
		Dev:       uint32(st.Dev),
		Ino:       uint32(st.Ino),
		Mode:      uint32(st.Mode),
		UID:       st.Uid,
		GID:       st.Gid,
		Size:      uint32(st.Size),
	}, nil
}
