package assets

import (
	"errors"
	"fmt"
)

// kindError is a sentinel error that also carries the title shown in the
// fatal dialog.
type kindError struct {
	msg     string
	summary string
}

func (e *kindError) Error() string   { return e.msg }
func (e *kindError) Summary() string { return e.summary }

// Sentinel errors returned by the asset layer. Compare with errors.Is.
var (
	ErrAssetRootNotFound error = &kindError{"assets: asset root not found", "Asset directory not found"}
	ErrAssetPathEscape   error = &kindError{"assets: path escapes the asset root", "Invalid asset path"}
	ErrNotInManifest     error = &kindError{"assets: path is not in the asset list", "Failed to get asset handle"}
	ErrUnsupported       error = &kindError{"assets: operation not supported by integrity class", "Unsupported asset operation"}
	ErrEmptyOptional     error = &kindError{"assets: optional asset is empty", "Failed to load asset file"}
	ErrPoisoned          error = &kindError{"assets: static asset changed on disk", "Asset file corruption detection"}
	ErrIO                error = &kindError{"assets: i/o failure", "Failed to load asset file"}
	ErrWatcherInit       error = &kindError{"assets: watcher initialization failed", "Asset file watcher initialize failed"}
)

// ManifestKind classifies a manifest parse failure.
type ManifestKind int

const (
	ManifestSyntax ManifestKind = iota
	ManifestDuplicate
	ManifestClass
	ManifestPath
)

func (k ManifestKind) String() string {
	switch k {
	case ManifestSyntax:
		return "invalid syntax"
	case ManifestDuplicate:
		return "duplicate path"
	case ManifestClass:
		return "invalid class"
	case ManifestPath:
		return "invalid path"
	default:
		return "unknown"
	}
}

// ManifestError reports a bad line in the asset list. Line is 1-based.
type ManifestError struct {
	Line int
	Kind ManifestKind
	Text string
	Err  error
}

func (e *ManifestError) Error() string {
	msg := fmt.Sprintf("assets: asset list line %d: %s", e.Line, e.Kind)
	if e.Text != "" {
		msg += fmt.Sprintf(" %q", e.Text)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ManifestError) Unwrap() error   { return e.Err }
func (e *ManifestError) Summary() string { return "Failed to parse asset list" }

// DecodeError wraps a decoder failure for one asset. Position is filled in
// when the decoder can tell where the input went wrong.
type DecodeError struct {
	Path     string
	Position string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Position != "" {
		return fmt.Sprintf("assets: decode %s at %s: %v", e.Path, e.Position, e.Err)
	}
	return fmt.Sprintf("assets: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error   { return e.Err }
func (e *DecodeError) Summary() string { return "Failed to load asset file" }

// EncodeError wraps an encoder failure for one asset.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("assets: encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error   { return e.Err }
func (e *EncodeError) Summary() string { return "Failed to save asset file" }

// VerifyError reports an asset that failed the startup check.
type VerifyError struct {
	Path   string
	Reason string
	Err    error
}

func (e *VerifyError) Error() string {
	msg := fmt.Sprintf("assets: verify %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *VerifyError) Unwrap() error   { return e.Err }
func (e *VerifyError) Summary() string { return "Asset verification failed" }

// positioner is implemented by decoder errors that know where the input
// went wrong (for example "line 3, column 7").
type positioner interface {
	Position() string
}

func decodeError(path string, err error) error {
	de := &DecodeError{Path: path, Err: err}
	var p positioner
	if errors.As(err, &p) {
		de.Position = p.Position()
	}
	return de
}
