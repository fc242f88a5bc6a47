// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package winurl

import (
	"context"
	"errors"
	"fmt"

	"zb.256lights.llc/winpath"
	"zombiezen.com/go/log"
)

// A Prefix associates a locator prefix pattern with the scheme prefix
// to prepend when the pattern matches.
type Prefix struct {
	// Pattern is compared against the start of a locator,
	// ignoring ASCII case.
	Pattern string
	// Prefix is prepended to the locator on a match,
	// e.g. "http://" for the pattern "www.".
	Prefix string
}

// A SchemeRegistry supplies the external prefix tables
// that [ApplyScheme] consults.
// Implementations are in package urlregistry.
type SchemeRegistry interface {
	// Prefixes returns the guess table in match order.
	Prefixes(ctx context.Context) ([]Prefix, error)
	// DefaultPrefix returns the prefix applied
	// when no guess matches, e.g. "http://".
	DefaultPrefix(ctx context.Context) (string, error)
}

// ApplyFlags controls [ApplyScheme].
type ApplyFlags struct {
	// Default prepends the registry's default prefix
	// when the locator has no scheme (or ForceApply is set).
	Default bool
	// GuessScheme consults the registry's prefix table
	// when the locator has no scheme.
	GuessScheme bool
	// GuessFile converts a bare drive path into a file locator.
	GuessFile bool
	// ForceApply applies the default prefix
	// even when the locator already has a scheme.
	ForceApply bool
}

// errNoGuess reports that no registry prefix matched.
var errNoGuess = errors.New("no prefix matched")

// ApplyScheme gives url a scheme when it lacks one,
// guessing from the registry's prefix table or falling back to its
// default prefix, per flags.
// The second result reports whether anything was applied;
// when it is false, url is returned unchanged.
func ApplyScheme(ctx context.Context, reg SchemeRegistry, url string, size int, flags ApplyFlags) (string, bool, error) {
	if size <= 0 {
		return "", false, winpath.ErrInvalidArgument
	}

	if flags.GuessFile && size > 1 && len(url) > 1 && url[1] == ':' {
		out, converted, err := createFromPath(url, size)
		if err != nil || converted {
			return out, converted, err
		}
		// Already a locator.
		return url, false, nil
	}

	_, perr := Parse(url)
	if perr != nil && flags.GuessScheme {
		out, err := guessScheme(ctx, reg, url, size)
		if !errors.Is(err, errNoGuess) {
			return out, err == nil, err
		}
	}
	if flags.Default && (perr != nil || flags.ForceApply) {
		out, err := applyDefaultScheme(ctx, reg, url, size)
		return out, err == nil, err
	}
	return url, false, nil
}

func guessScheme(ctx context.Context, reg SchemeRegistry, url string, size int) (string, error) {
	prefixes, err := reg.Prefixes(ctx)
	if err != nil {
		return "", fmt.Errorf("guess scheme for %q: %w", url, err)
	}
	for _, p := range prefixes {
		if len(url) >= len(p.Pattern) && equalFold(url[:len(p.Pattern)], p.Pattern) {
			result := p.Prefix + url
			if err := checkSize(len(result), size); err != nil {
				return "", err
			}
			log.Debugf(ctx, "Guessed prefix %q for %q", p.Prefix, url)
			return result, nil
		}
	}
	return "", errNoGuess
}

func applyDefaultScheme(ctx context.Context, reg SchemeRegistry, url string, size int) (string, error) {
	prefix, err := reg.DefaultPrefix(ctx)
	if err != nil {
		return "", fmt.Errorf("apply default scheme to %q: %w", url, err)
	}
	result := prefix + url
	if err := checkSize(len(result), size); err != nil {
		return "", err
	}
	log.Debugf(ctx, "Applied default prefix %q to %q", prefix, url)
	return result, nil
}
