/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikeb26/courtbot/s3store"
)

var ErrNotFound = errors.New("snapshot: document not found")

// Store reads and writes named league documents (players.json,
// history.json, ...) under one location.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	String() string
}

// Open returns a Store for uri. "s3://bucket/prefix" selects S3; anything
// else is treated as a local directory.
func Open(ctx context.Context, uri string) (Store, error) {
	if !strings.HasPrefix(uri, "s3://") {
		if uri == "" {
			uri = "."
		}
		return DirStore(uri), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("snapshot.open: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("snapshot.open: %v: missing bucket", uri)
	}
	st := s3store.New(ctx, u.Host, strings.Trim(u.Path, "/"), false, true)
	if err := st.Init(); err != nil {
		return nil, fmt.Errorf("snapshot.open: %w", err)
	}
	return NewS3Store(st), nil
}

// DirStore keeps documents as files in a directory.
type DirStore string

func (d DirStore) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(string(d), name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, filepath.Join(string(d), name))
	}
	return data, err
}

func (d DirStore) Write(_ context.Context, name string, data []byte) error {
	p := filepath.Join(string(d), name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("snapshot.write: %w", err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("snapshot.write: %w", err)
	}
	return nil
}

func (d DirStore) String() string { return string(d) }

type s3Store struct {
	st *s3store.Store
}

// NewS3Store adapts an initialized s3store.Store.
func NewS3Store(st *s3store.Store) Store {
	return &s3Store{st: st}
}

func (s *s3Store) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := s.st.GetObject(ctx, name)
	if errors.Is(err, s3store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return data, err
}

func (s *s3Store) Write(ctx context.Context, name string, data []byte) error {
	return s.st.PutObject(ctx, name, data)
}

func (s *s3Store) String() string {
	return "s3://" + s.st.Bucket()
}

// ReadJSON decodes document name into v.
func ReadJSON(ctx context.Context, st Store, name string, v any) error {
	data, err := st.Read(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("snapshot.read: %v: %w", name, err)
	}
	return nil
}

// WriteJSON encodes v as indented JSON into document name.
func WriteJSON(ctx context.Context, st Store, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot.write: %v: %w", name, err)
	}
	return st.Write(ctx, name, append(data, '\n'))
}
