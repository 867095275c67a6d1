/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3store keeps league snapshots and cached web pages in Amazon S3.
 * The Store type satisfies httpcache.Cache so that it can back a caching
 * http.Client, and also offers JSON object get/put for roster, history and
 * schedule documents.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

var ErrNotFound = errors.New("s3store: object not found")

// ObjectAPI is the subset of the S3 client used by Store.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Store struct {
	// Config is the AWS configuration loaded by Init.
	Config aws.Config

	// Client defaults to an s3.Client built in Init; callers may override
	// it before use.
	Client ObjectAPI

	bucketName string
	// key prefix for every object, e.g. "webcache" or "leagues/thu-night"
	prefix string
	// gzip compresses objects in Set/Put and adds a ".gz" suffix
	gzip      bool
	logErrors bool

	ctx context.Context
}

// New returns a Store for bucket. Callers should invoke Init (or set
// Client) before use.
func New(ctxIn context.Context, bucketNameIn string, prefixIn string,
	gzipIn bool, logErrorsIn bool) *Store {

	return &Store{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		prefix:     prefixIn,
		gzip:       gzipIn,
		logErrors:  logErrorsIn,
	}
}

// Init loads the default AWS configuration (environment, shared config
// and credentials files) and verifies the bucket is accessible.
func (s *Store) Init() error {
	var err error
	s.Config, err = config.LoadDefaultConfig(s.ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(s.Config)
	s.Client = client

	if _, err = client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w", s.bucketName, err)
	}

	return nil
}

func (s *Store) Bucket() string { return s.bucketName }

func (s *Store) objectKey(name string) string {
	key := path.Join(s.prefix, name)
	if s.gzip {
		key += ".gz"
	}
	return key
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

// GetObject returns the (decompressed) object stored under name.
func (s *Store) GetObject(ctx context.Context, name string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(name)),
	}
	resp, err := s.Client.GetObject(ctx, input)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: %v/%v", ErrNotFound, *input.Bucket, *input.Key)
		}
		return nil, fmt.Errorf("s3store.get: %v/%v: %w", *input.Bucket, *input.Key, err)
	}
	defer resp.Body.Close()

	var rdr io.ReadCloser = resp.Body
	if s.gzip {
		gr, err := gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("s3store.get: failed to open compressed object %v/%v: %w",
				*input.Bucket, *input.Key, err)
		}
		defer gr.Close()
		rdr = gr
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("s3store.get: failed to read object %v/%v: %w",
			*input.Bucket, *input.Key, err)
	}
	return data, nil
}

// PutObject stores data under name, compressing it if the store is gzipped.
func (s *Store) PutObject(ctx context.Context, name string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(name)),
		Body:   bytes.NewReader(data),
	}

	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("s3store.put: failed to gzip data for %v/%v: %w",
				*input.Bucket, *input.Key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("s3store.put: failed to close gzip writer for %v/%v: %w",
				*input.Bucket, *input.Key, err)
		}
		input.Body = bytes.NewReader(buf.Bytes())
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3store.put: %v/%v: %w", *input.Bucket, *input.Key, err)
	}
	return nil
}

// LoadJSON decodes the object stored under name into v.
func (s *Store) LoadJSON(ctx context.Context, name string, v any) error {
	data, err := s.GetObject(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("s3store.load: %v: %w", name, err)
	}
	return nil
}

// SaveJSON encodes v and stores it under name.
func (s *Store) SaveJSON(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("s3store.save: %v: %w", name, err)
	}
	return s.PutObject(ctx, name, data)
}

// cacheName hashes an httpcache key (a URL) into an object name.
func cacheName(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return hex.EncodeToString(h.Sum(nil))
}

// Get implements httpcache.Cache.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := s.GetObject(s.ctx, cacheName(key))
	if err != nil {
		// not found just indicates a cache miss
		if s.logErrors && !errors.Is(err, ErrNotFound) {
			log.Printf("s3store.cacheget: %v", err)
		}
		return []byte{}, false
	}
	return data, true
}

// Set implements httpcache.Cache.
func (s *Store) Set(key string, data []byte) {
	if err := s.PutObject(s.ctx, cacheName(key), data); err != nil && s.logErrors {
		log.Printf("s3store.cacheset: %v", err)
	}
}

// Delete implements httpcache.Cache.
func (s *Store) Delete(key string) {
	_, err := s.Client.DeleteObject(s.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(cacheName(key))),
	})
	if err != nil && s.logErrors {
		log.Printf("s3store.cachedelete: delete failed: %v", err)
	}
}
