package labeling

import (
	"fmt"
	"strconv"
	"strings"
)

// Label is a discrete label code. LabelNone marks an unlabeled row; it is
// never persisted.
type Label int

const LabelNone Label = 0

// Labels lists the assignable codes in display order.
var Labels = []Label{1, 2, 3}

// Valid reports whether l is an assignable code.
func (l Label) Valid() bool {
	return l >= 1 && l <= Label(len(Labels))
}

// Assigned reports whether l carries a code.
func (l Label) Assigned() bool {
	return l != LabelNone
}

// String returns the wire form of the label. LabelNone renders empty.
func (l Label) String() string {
	if l == LabelNone {
		return ""
	}
	return strconv.Itoa(int(l))
}

// ParseLabel parses the wire form of a label cell. Empty input is LabelNone.
// Values outside the assignable set are malformed.
func ParseLabel(s string) (Label, error) {
	if strings.TrimSpace(s) == "" {
		return LabelNone, nil
	}
	n, err := intCell(s)
	if err != nil {
		return LabelNone, fmt.Errorf("malformed label: %w", err)
	}
	l := Label(n)
	if !l.Valid() {
		return LabelNone, fmt.Errorf("label %d outside the assignable set", n)
	}
	return l, nil
}

// LabelSet holds the persisted label for each known row key.
type LabelSet map[Key]Label
