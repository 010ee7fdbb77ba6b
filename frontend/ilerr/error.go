package ilerr

import (
	"github.com/pkg/errors"
	"go/token"
	"strings"
)

// As finds the first IleError in err's chain
func As(err error) (IleError, bool) {
	var ileErr IleError
	if errors.As(err, &ileErr) {
		return ileErr, true
	}
	return nil, false
}

// CodeOf returns the ErrCode of the IleError in err's chain, or None
func CodeOf(err error) ErrCode {
	if ileErr, ok := As(err); ok {
		return ileErr.Code()
	}
	return None
}

// FormatWithSource prefixes FormatWithCode with the file:line:column of e when fset knows it
func FormatWithSource(e IleError, fset *token.FileSet) string {
	if fset == nil || !positioned(e) {
		return FormatWithCode(e)
	}
	position := fset.Position(e.Pos())
	if !position.IsValid() {
		return FormatWithCode(e)
	}
	sb := &strings.Builder{}
	sb.WriteString(position.String())
	sb.WriteString(": ")
	sb.WriteString(FormatWithCode(e))
	return sb.String()
}
