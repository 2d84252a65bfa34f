package blobname

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/teris-io/shortid"
)

// ExistsFunc is the blob existence oracle, provided by the storage backend. It reports whether a
// blob with the given canonical name already exists.
type ExistsFunc func(name string) (bool, error)

// TokenFunc generates a short disambiguation token. Tokens must consist of characters that
// survive normalization (Unicode word characters, "-", "_", ".").
type TokenFunc func() string

// Resolver turns a raw name into a canonical name that is free on the target store.
//
// The existence probe and the eventual write are separate calls with no transactional link, so
// two callers racing to claim the same resolved name can both be told it is free. The backing
// store's consistency model is outside this package's control; callers that cannot tolerate the
// race must overwrite deliberately or serialize externally.
type Resolver struct {
	// MaxLength bounds resolved names, in characters. Zero means DefaultMaxLength.
	MaxLength int

	// Overwrite, when true, skips collision avoidance: the normalized name is returned as-is and
	// the caller may clobber an existing object.
	Overwrite bool

	// Token generates the disambiguation tokens inserted before the file extension on collision.
	// When nil, a short random token is used.
	Token TokenFunc
}

// Resolve normalizes raw and returns the first canonical candidate for which exists reports
// false. On collision a new candidate of the form "{stem}_{token}{ext}" is generated and
// re-probed. A normalized name longer than MaxLength is not an error: it takes the same
// tokenized form, with the stem truncated so the candidate fits MaxLength exactly and the
// extension is never cut. Resolution fails only when the token and extension alone overflow
// MaxLength, or when normalization itself fails; both surface as *InvalidNameError.
func (r *Resolver) Resolve(raw string, exists ExistsFunc) (string, error) {
	maxLength := r.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	// MaxLength is the resolver's bound, not the normalizer's. Normalization enforces only the
	// hard DefaultMaxLength cap; a canonical name that overflows MaxLength is truncated below.
	name, err := Normalize(raw)
	if err != nil {
		return "", err
	}

	if r.Overwrite {
		return name, nil
	}

	token := r.Token
	if token == nil {
		token = RandomToken
	}

	candidate := name
	if utf8.RuneCountInString(candidate) > maxLength {
		if candidate, err = nextCandidate(name, token(), maxLength); err != nil {
			return "", err
		}
	}
	for {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("existence check for %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}

		if candidate, err = nextCandidate(name, token(), maxLength); err != nil {
			return "", err
		}
	}
}

// nextCandidate builds the tokenized, length-bounded successor of name.
func nextCandidate(name, token string, maxLength int) (string, error) {
	next, err := disambiguate(name, token, maxLength)
	if err != nil {
		return "", err
	}
	return NormalizeWithLimit(next, maxLength)
}

// disambiguate inserts "_{token}" between name's stem and extension, truncating the stem when the
// result would exceed maxLength. The extension is preserved whole; when even a one-character stem
// plus token and extension cannot fit, an *InvalidNameError is returned.
func disambiguate(name, token string, maxLength int) (string, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := stem + "_" + token + ext
	if utf8.RuneCountInString(candidate) <= maxLength {
		return candidate, nil
	}

	room := maxLength - utf8.RuneCountInString("_"+token+ext)
	if room < 1 {
		return "", &InvalidNameError{Name: name, Reason: reasonTooLong}
	}
	stemRunes := []rune(stem)
	if room < len(stemRunes) {
		stem = string(stemRunes[:room])
	}
	return stem + "_" + token + ext, nil
}

// RandomToken is the default TokenFunc: a short unique id whose alphabet is limited to
// characters that survive normalization.
func RandomToken() string {
	id, err := shortid.Generate()
	if err != nil {
		// entropy exhaustion is effectively unreachable; fall back to a clock-derived token
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return id
}
