package vrm_normalizer

import (
	"errors"
	"strconv"
	"strings"
)

const (
	_Ki = 1 << ((iota + 1) * 10)
	_Mi
	_Gi
	_Ti
)

const (
	_K = 1e3
	_M = 1e6
	_G = 1e9
	_T = 1e12
)

// SizeScalar is a byte count that renders as a human-readable size, used by
// the CLI report (§6.4) for the before/after binary chunk byte totals.
type SizeScalar uint64

var _sizeBaseUnitMatrix = []struct {
	Base float64
	Unit string
}{
	{_Ti, "Ti"},
	{_T, "T"},
	{_Gi, "Gi"},
	{_G, "G"},
	{_Mi, "Mi"},
	{_M, "M"},
	{_Ki, "Ki"},
	{_K, "K"},
}

// ParseSizeScalar parses a string like "12.5 MiB" (unit suffix optional)
// into a SizeScalar.
func ParseSizeScalar(s string) (SizeScalar, error) {
	if s == "" {
		return 0, errors.New("invalid size")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "B")
	b := float64(1)
	for i := range _sizeBaseUnitMatrix {
		if strings.HasSuffix(s, _sizeBaseUnitMatrix[i].Unit) {
			b = _sizeBaseUnitMatrix[i].Base
			s = strings.TrimSuffix(s, _sizeBaseUnitMatrix[i].Unit)
			break
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return SizeScalar(f * b), nil
}

func (s SizeScalar) String() string {
	if s == 0 {
		return "0 B"
	}
	b, u := float64(1), ""
	for i := range _sizeBaseUnitMatrix {
		if float64(s) >= _sizeBaseUnitMatrix[i].Base {
			b = _sizeBaseUnitMatrix[i].Base
			u = _sizeBaseUnitMatrix[i].Unit
			break
		}
	}
	f := strconv.FormatFloat(float64(s)/b, 'f', 2, 64)
	return strings.TrimSuffix(f, ".00") + " " + u + "B"
}
