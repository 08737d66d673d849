// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fetch downloads remote sources with Hashicorp's go-getter so they can be
// read through a tee like a local file. See https://github.com/hashicorp/go-getter
// for the URL syntax.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/teeio/internal/ctxlog"
)

// ErrFetch is returned when a remote source can not be downloaded.
var ErrFetch = errors.New("failed to fetch source")

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // Minimum parts in a go-getter URL: scheme, host, and path
)

// IsRemote reports whether src must be downloaded, that is whether go-getter does not
// detect it as a local file path.
func IsRemote(src string) (bool, error) {
	if src == "" {
		return false, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return false, errors.Join(ErrFetch, err)
	}

	req := &getter.Request{
		Src: src,
		Pwd: wd,
	}

	ok, err := getter.Detect(req, &getter.FileGetter{})
	if err != nil {
		return false, errors.Join(ErrFetch, err)
	}

	return !ok, nil
}

// Fetch downloads the single file named by src into dir and returns its local path.
//
// URLs that carry a "//" subdirectory (git::https://host/repo//file?ref=v1) are fetched
// as a directory and the file picked out of it. Plain URLs are fetched as one file.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	if src == "" {
		return "", fmt.Errorf("%w: empty source", ErrFetch)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Join(ErrFetch, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Pwd:     wd,
		GetMode: getter.ModeDir,
		Copy:    true,
	}

	newURL, fileName := splitFileNameFromGetterURL(src)
	if newURL != "" && fileName != "" {
		req.Src = newURL
		req.Dst = filepath.Join(dir, "g")
	} else {
		fileName = fileNameFromURL(src)
		req.Src = src
		req.Dst = filepath.Join(dir, fileName)
		req.GetMode = getter.ModeFile
	}

	ctxlog.Debug(ctx, "fetch", "src", req.Src, "dst", req.Dst, "file", fileName)

	res, err := client.Get(ctx, req)
	if err != nil {
		return "", errors.Join(ErrFetch, err)
	}

	if req.GetMode == getter.ModeFile {
		return res.Dst, nil
	}

	return filepath.Join(res.Dst, fileName), nil
}

// splitFileNameFromGetterURL splits the URL into the directory and file name.
// It returns the new getter URL without the file name and the file name itself.
// It will append any ref query parameter to the new URL if it exists.
func splitFileNameFromGetterURL(src string) (string, string) {
	var ref, fileName string

	parts := strings.Split(src, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, found := strings.Cut(last, goGetterRefSeparator); found {
		ref = after
		last = before
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName = filepath.Base(last)
	parts[len(parts)-1] = filepath.Dir(last)

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}

// fileNameFromURL returns the last path element of src, ignoring any forced getter
// prefix and query.
func fileNameFromURL(src string) string {
	if _, after, found := strings.Cut(src, "::"); found {
		src = after
	}

	name := "source"

	if u, err := url.Parse(src); err == nil && u.Path != "" {
		if base := path.Base(u.Path); base != "/" && base != "." {
			name = base
		}
	}

	return name
}
