package vrm_normalizer

import (
	"fmt"

	"github.com/vrm-tools/vrm-normalizer-go/util/osx"
)

// LoadLocal opens path and decodes it as a VRM file. With UseMMap, the file
// is memory-mapped instead of held open as a plain *os.File; either way the
// returned VRM's source reader backs the same sequential skip/copy access
// pattern the binary relocator drives during Normalize, so the caller must
// keep the returned closer open (and Close it) until after Save.
func LoadLocal(path string, opts ...VRMReadOption) (*VRM, func() error, error) {
	o := newVRMOptions(opts...)

	if o.MMap {
		mf, err := osx.OpenMmapFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open mmap file: %w", err)
		}
		v, err := Load(&mmapReader{mf: mf}, opts...)
		if err != nil {
			osx.Close(mf)
			return nil, nil, err
		}
		return v, mf.Close, nil
	}

	f, err := osx.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	v, err := Load(f, opts...)
	if err != nil {
		osx.Close(f)
		return nil, nil, err
	}
	return v, f.Close, nil
}

// mmapReader adapts osx.MmapFile's io.ReaderAt into the sequential io.Reader
// the GLB decoder and binary relocator both expect.
type mmapReader struct {
	mf  *osx.MmapFile
	pos int64
}

func (r *mmapReader) Read(p []byte) (int, error) {
	n, err := r.mf.ReadAt(p, r.pos)
	r.pos += int64(n)
	return n, err
}
