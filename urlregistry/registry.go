// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

// Package urlregistry provides [winurl.SchemeRegistry] implementations:
// an in-memory table, a HuJSON configuration file loader,
// and a SQLite-backed registry.
package urlregistry

import (
	"context"
	"fmt"
	"os"
	"slices"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/tailscale/hujson"
	"zb.256lights.llc/winpath/winurl"
)

// Static is an immutable in-memory scheme registry.
type Static struct {
	prefixes      []winurl.Prefix
	defaultPrefix string
}

// NewStatic returns a registry serving the given prefix table
// (in match order) and default prefix.
func NewStatic(prefixes []winurl.Prefix, defaultPrefix string) *Static {
	return &Static{
		prefixes:      slices.Clone(prefixes),
		defaultPrefix: defaultPrefix,
	}
}

// Prefixes implements [winurl.SchemeRegistry].
func (s *Static) Prefixes(ctx context.Context) ([]winurl.Prefix, error) {
	return slices.Clone(s.prefixes), nil
}

// DefaultPrefix implements [winurl.SchemeRegistry].
func (s *Static) DefaultPrefix(ctx context.Context) (string, error) {
	return s.defaultPrefix, nil
}

// fileConfig is the registry configuration file object.
type fileConfig struct {
	Prefixes      []filePrefix `json:"prefixes"`
	DefaultPrefix string       `json:"defaultPrefix"`
}

type filePrefix struct {
	Pattern string `json:"pattern"`
	Prefix  string `json:"prefix"`
}

// LoadFile reads a registry from a HuJSON
// ("human JSON": JSON with comments and trailing commas)
// configuration file of the form:
//
//	{
//		"prefixes": [
//			{"pattern": "www.", "prefix": "http://"},
//		],
//		"defaultPrefix": "http://",
//	}
func LoadFile(path string) (*Static, error) {
	huJSONData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load url registry: %w", err)
	}
	reg, err := unmarshalConfig(huJSONData)
	if err != nil {
		return nil, fmt.Errorf("load url registry %s: %v", path, err)
	}
	return reg, nil
}

func unmarshalConfig(huJSONData []byte) (*Static, error) {
	jsonData, err := hujson.Standardize(huJSONData)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := jsonv2.Unmarshal(jsonData, &cfg, jsonv2.RejectUnknownMembers(false)); err != nil {
		return nil, err
	}
	reg := &Static{defaultPrefix: cfg.DefaultPrefix}
	for _, p := range cfg.Prefixes {
		reg.prefixes = append(reg.prefixes, winurl.Prefix{
			Pattern: p.Pattern,
			Prefix:  p.Prefix,
		})
	}
	return reg, nil
}
