//go:build stringer

//go:generate go run golang.org/x/tools/cmd/stringer -type GLBChunkKind -output zz_generated.glbchunkkind.stringer.go -trimprefix GLBChunkKind
package vrm_normalizer

import _ "golang.org/x/tools/cmd/stringer"
