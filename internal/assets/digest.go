package assets

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

// AssetKeysFile is the name of the embedded digest list.
const AssetKeysFile = "AssetKeys.txt"

//go:embed AssetKeys.txt
var assetKeys string

// Keys maps Static asset paths to their BLAKE2b-256 digest.
type Keys map[string][]byte

// DefaultKeys parses the digest list embedded in the binary.
func DefaultKeys() (Keys, error) {
	return ParseKeys(assetKeys)
}

// ParseKeys parses lines of the form "<hex digest> <path>". Blank lines and
// lines starting with '#' are skipped.
func ParseKeys(text string) (Keys, error) {
	keys := make(Keys)
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("assets: asset keys line %d: invalid syntax", i+1)
		}
		sum, err := hex.DecodeString(fields[0])
		if err != nil || len(sum) != blake2b.Size256 {
			return nil, fmt.Errorf("assets: asset keys line %d: invalid digest", i+1)
		}
		p, err := NormalizePath(fields[1])
		if err != nil {
			return nil, fmt.Errorf("assets: asset keys line %d: %w", i+1, err)
		}
		keys[p] = sum
	}
	return keys, nil
}

// Digest returns the BLAKE2b-256 digest of r.
func Digest(r io.Reader) ([]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

func digestFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Digest(f)
}

// Verify checks the asset directory against the manifest. Every asset that
// cannot be created must exist as a regular file, and every Static asset
// must match its key. Files are checked in parallel.
func Verify(ctx context.Context, root Root, m *Manifest, keys Keys) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for p, class := range m.All() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return VerifyOne(root, p, class, keys)
		})
	}
	return g.Wait()
}

// VerifyOne checks a single asset the way Verify does.
func VerifyOne(root Root, p string, class Class, keys Keys) error {
	file, err := root.Join(p)
	if err != nil {
		return &VerifyError{Path: p, Reason: "invalid path", Err: err}
	}

	if !class.Creatable() {
		info, err := os.Stat(file)
		if err != nil {
			return &VerifyError{Path: p, Reason: "asset is not a file or path cannot be found", Err: err}
		}
		if !info.Mode().IsRegular() {
			return &VerifyError{Path: p, Reason: "asset is not a file or path cannot be found"}
		}
	}

	if class.Writable() {
		return nil
	}

	want, ok := keys[p]
	if !ok {
		return &VerifyError{Path: p, Reason: "asset key not found"}
	}
	got, err := digestFile(file)
	if err != nil {
		return &VerifyError{Path: p, Reason: "cannot read asset", Err: err}
	}
	if !bytes.Equal(got, want) {
		return &VerifyError{Path: p, Reason: "digest mismatch"}
	}
	return nil
}

// FormatKeys computes the key list for every Static asset under root, in the
// format read by ParseKeys.
func FormatKeys(root Root, m *Manifest) (string, error) {
	var sb strings.Builder
	var errs []error
	for p, class := range m.All() {
		if class != Static {
			continue
		}
		file, err := root.Join(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sum, err := digestFile(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("assets: digest %s: %w", p, err))
			continue
		}
		fmt.Fprintf(&sb, "%s  %s\n", hex.EncodeToString(sum), p)
	}
	return sb.String(), errors.Join(errs...)
}
